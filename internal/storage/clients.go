package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
)

const (
	clientPrefix  = "client:"
	clientIdxTmpl = "clientidx:%s:%s" // name, phone
)

// ClientRepository persists registered clients. Registration is idempotent
// on (name, phone): a repeat registration returns the existing record.
type ClientRepository struct {
	db *badger.DB
}

func NewClientRepository(db *badger.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (c *ClientRepository) Register(ctx context.Context, name, phone, city, email string) (domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return domain.Client{}, err
	}
	if name == "" {
		return domain.Client{}, fmt.Errorf("%w: client name required", domain.ErrInvalidArgument)
	}

	client := domain.NewClient(name, phone, city, email, time.Now().UTC())
	idxKey := []byte(fmt.Sprintf(clientIdxTmpl, name, phone))

	err := c.db.Update(func(txn *badger.Txn) error {
		if phone != "" {
			item, err := txn.Get(idxKey)
			if err == nil {
				// Already registered; hand back the stored record.
				return item.Value(func(id []byte) error {
					existing, err := txn.Get(clientKey(string(id)))
					if err != nil {
						return err
					}
					return existing.Value(func(v []byte) error {
						return json.Unmarshal(v, &client)
					})
				})
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}

		value, err := json.Marshal(client)
		if err != nil {
			return err
		}
		if err := txn.Set(clientKey(client.ID), value); err != nil {
			return err
		}
		if phone != "" {
			return txn.Set(idxKey, []byte(client.ID))
		}
		return nil
	})
	if err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

// List returns all clients, most recently registered first.
func (c *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []domain.Client
	err := c.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(clientPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var cl domain.Client
				if err := json.Unmarshal(v, &cl); err != nil {
					return err
				}
				out = append(out, cl)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return out, nil
}

func clientKey(id string) []byte {
	return []byte(clientPrefix + id)
}
