package docstore

import (
	"context"
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/aegisleagues/league-data/internal/platform/docstore"
)

// GamedataRepository reads the reference catalogs kept in the Miscellaneous
// table: the champion-ID catalog and the current patch label.
type GamedataRepository struct {
	store docstore.Store
}

func NewGamedataRepository(store docstore.Store) *GamedataRepository {
	return &GamedataRepository{store: store}
}

type championCatalogDocument struct {
	Key       string            `json:"Key"`
	Champions map[string]string `json:"Champions"`
}

type patchDocument struct {
	Key   string `json:"Key"`
	Patch string `json:"Patch"`
}

func (r *GamedataRepository) ChampionExists(ctx context.Context, championID int) (bool, error) {
	doc, found, err := r.store.Get(ctx, tableMiscellaneous, miscKeyChampions)
	if err != nil {
		return false, fmt.Errorf("get champion catalog: %w", err)
	}
	if !found {
		return false, fmt.Errorf("champion catalog is missing")
	}

	var catalog championCatalogDocument
	if err := sonic.Unmarshal(doc, &catalog); err != nil {
		return false, fmt.Errorf("decode champion catalog: %w", err)
	}
	_, ok := catalog.Champions[strconv.Itoa(championID)]
	return ok, nil
}

func (r *GamedataRepository) CurrentPatch(ctx context.Context) (string, error) {
	doc, found, err := r.store.Get(ctx, tableMiscellaneous, miscKeyPatch)
	if err != nil {
		return "", fmt.Errorf("get patch version: %w", err)
	}
	if !found {
		return "", nil
	}

	var decoded patchDocument
	if err := sonic.Unmarshal(doc, &decoded); err != nil {
		return "", fmt.Errorf("decode patch version: %w", err)
	}
	return decoded.Patch, nil
}

// PutChampionCatalog and PutPatch seed the reference catalogs.
func (r *GamedataRepository) PutChampionCatalog(ctx context.Context, champions map[string]string) error {
	doc, err := sonic.Marshal(championCatalogDocument{Key: miscKeyChampions, Champions: champions})
	if err != nil {
		return fmt.Errorf("encode champion catalog: %w", err)
	}
	if err := r.store.Put(ctx, tableMiscellaneous, miscKeyChampions, doc); err != nil {
		return fmt.Errorf("put champion catalog: %w", err)
	}
	return nil
}

func (r *GamedataRepository) PutPatch(ctx context.Context, patch string) error {
	doc, err := sonic.Marshal(patchDocument{Key: miscKeyPatch, Patch: patch})
	if err != nil {
		return fmt.Errorf("encode patch version: %w", err)
	}
	if err := r.store.Put(ctx, tableMiscellaneous, miscKeyPatch, doc); err != nil {
		return fmt.Errorf("put patch version: %w", err)
	}
	return nil
}
