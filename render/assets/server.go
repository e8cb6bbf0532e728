package assets

import (
	"github.com/google/uuid"
)

type AssetId string

// Resource is anything owning GPU memory.
type Resource interface {
	Destroy()
}

type asset struct {
	name     string
	resource Resource
}

// AssetServer tracks live GPU resources so they can be released together,
// newest first, when the scene shuts down.
type AssetServer struct {
	assets map[AssetId]asset
	order  []AssetId
}

func NewAssetServer() *AssetServer {
	return &AssetServer{assets: make(map[AssetId]asset)}
}

// Track registers r under a fresh id.
func (server *AssetServer) Track(name string, r Resource) AssetId {
	id := makeAssetId()
	server.assets[id] = asset{name: name, resource: r}
	server.order = append(server.order, id)
	return id
}

func (server *AssetServer) Get(id AssetId) (Resource, bool) {
	a, ok := server.assets[id]
	return a.resource, ok
}

// Release destroys and forgets one resource.
func (server *AssetServer) Release(id AssetId) bool {
	a, ok := server.assets[id]
	if !ok {
		return false
	}
	a.resource.Destroy()
	delete(server.assets, id)
	for i, o := range server.order {
		if o == id {
			server.order = append(server.order[:i], server.order[i+1:]...)
			break
		}
	}
	return true
}

// ReleaseAll destroys every resource in reverse creation order.
func (server *AssetServer) ReleaseAll() {
	for i := len(server.order) - 1; i >= 0; i-- {
		server.assets[server.order[i]].resource.Destroy()
	}
	server.assets = make(map[AssetId]asset)
	server.order = nil
}

func (server *AssetServer) Len() int { return len(server.order) }

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
