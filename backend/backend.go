// Package backend discovers the Play-state servers an example login
// gateway (cmd/loginserver) hands newly authenticated connections off
// to, generalized from the teacher's registry.Registry/ServiceInstance
// pair: the same "distributed phonebook" shape, repointed at Minecraft
// backend servers instead of arbitrary RPC service instances.
package backend

// Server describes one backend Play-state server a gateway can route
// a connection to after login completes.
type Server struct {
	Addr       string // "host:port"
	Weight     int    // relative weight; RoundRobin ignores it
	ProtocolID string // the Minecraft protocol/version label this server runs
}

// Registry is the discovery interface the example gateway depends on;
// EtcdRegistry is the production implementation, mirroring the
// teacher's Registry/EtcdRegistry split so tests can substitute an
// in-memory fake.
type Registry interface {
	Register(fleet string, srv Server, ttlSeconds int64) error
	Deregister(fleet string, addr string) error
	Discover(fleet string) ([]Server, error)
	Watch(fleet string) <-chan []Server
}
