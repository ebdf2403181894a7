package consul

import (
	"context"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/console/history"
)

// ConsulStore keeps the history as a single Consul KV entry in the plain text
// format. Consul limits values to 512KB, far above any sensible history.
type ConsulStore struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV
	config *ConsulStoreConfig
	open   bool
}

type ConsulStoreConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Key holding the history (default: "console/history")
	Key string
}

func NewConsulStore(config *ConsulStoreConfig) (*ConsulStore, error) {
	if config == nil {
		config = &ConsulStoreConfig{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}
	if config.Key == "" {
		config.Key = "console/history"
	}
	config.Key = strings.TrimPrefix(config.Key, "/")

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulStore{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this store
func (*ConsulStore) Name() string {
	return "consul"
}

// Open verifies the agent is reachable.
func (cs *ConsulStore) Open(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, err := cs.client.Status().Leader(); err != nil {
		return err
	}

	cs.open = true
	return nil
}

func (cs *ConsulStore) Close(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.open = false
	return nil
}

func (cs *ConsulStore) Load(ctx context.Context) ([]string, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if !cs.open {
		return nil, history.ErrNotOpen
	}

	pair, _, err := cs.kv.Get(cs.config.Key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, nil
	}

	return history.Decode(pair.Value)
}

func (cs *ConsulStore) Save(ctx context.Context, lines []string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.open {
		return history.ErrNotOpen
	}

	pair := &api.KVPair{
		Key:   cs.config.Key,
		Value: history.Encode(lines),
	}
	_, err := cs.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx))
	return err
}
