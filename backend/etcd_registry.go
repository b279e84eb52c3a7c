// Package backend's etcd-backed Registry stores each fleet's servers
// under /mcproto/{fleet}/{addr}, the same TTL-lease/KeepAlive/Watch
// shape the teacher's registry.EtcdRegistry uses for RPC service
// instances — adapted here to Minecraft backend-server discovery.
package backend

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
)

// EtcdRegistry implements Registry using etcd v3.
type EtcdRegistry struct {
	client *clientv3.Client
	log    *zap.SugaredLogger
}

// NewEtcdRegistry connects to the given etcd endpoints. A nil logger
// falls back to a no-op logger.
func NewEtcdRegistry(endpoints []string, log *zap.SugaredLogger) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{Endpoints: endpoints})
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &EtcdRegistry{client: c, log: log}, nil
}

func key(fleet, addr string) string {
	return "/mcproto/" + fleet + "/" + addr
}

func (r *EtcdRegistry) Register(fleet string, srv Server, ttl int64) error {
	ctx := context.Background()
	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return err
	}
	val, err := json.Marshal(srv)
	if err != nil {
		return err
	}
	if _, err := r.client.Put(ctx, key(fleet, srv.Addr), string(val), clientv3.WithLease(lease.ID)); err != nil {
		return err
	}
	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}
	go func() {
		for range ch {
		}
	}()
	r.log.Infow("registered backend server", "fleet", fleet, "addr", srv.Addr)
	return nil
}

func (r *EtcdRegistry) Deregister(fleet string, addr string) error {
	_, err := r.client.Delete(context.Background(), key(fleet, addr))
	return err
}

func (r *EtcdRegistry) Discover(fleet string) ([]Server, error) {
	resp, err := r.client.Get(context.Background(), "/mcproto/"+fleet+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}
	servers := make([]Server, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var srv Server
		if err := json.Unmarshal(kv.Value, &srv); err != nil {
			r.log.Warnw("skipping malformed backend entry", "key", string(kv.Key), "error", err)
			continue
		}
		servers = append(servers, srv)
	}
	return servers, nil
}

func (r *EtcdRegistry) Watch(fleet string) <-chan []Server {
	ch := make(chan []Server, 1)
	prefix := "/mcproto/" + fleet + "/"
	go func() {
		watchChan := r.client.Watch(context.Background(), prefix, clientv3.WithPrefix())
		for range watchChan {
			servers, err := r.Discover(fleet)
			if err != nil {
				r.log.Warnw("watch refresh failed", "fleet", fleet, "error", err)
				continue
			}
			ch <- servers
		}
	}()
	return ch
}
