package http

import (
	"encoding/json"
	"os"

	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
)

// Directory is the static advocate listing, loaded once at startup. It is
// data, not state: no handler mutates it.
type Directory struct {
	advocates []domain.Advocate
}

func LoadDirectory(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var advocates []domain.Advocate
	if err := json.Unmarshal(raw, &advocates); err != nil {
		return nil, err
	}
	return &Directory{advocates: advocates}, nil
}

// EmptyDirectory is the fallback when no listing file is configured.
func EmptyDirectory() *Directory {
	return &Directory{}
}

func (d *Directory) All() []domain.Advocate {
	if d.advocates == nil {
		return []domain.Advocate{}
	}
	return d.advocates
}
