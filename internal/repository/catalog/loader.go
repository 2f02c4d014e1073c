package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/bdgeo/internal/domain"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
	logpkg "github.com/kailas-cloud/bdgeo/internal/logger"
)

// extensions are tried in order for each category file. JSON is read by the
// YAML decoder, which accepts it as a subset.
var extensions = []string{".yaml", ".yml", ".json"}

// fileNames returns candidate file names for a category: "districts.yaml", ...
func fileNames(c category.Category) []string {
	out := make([]string, len(extensions))
	for i, ext := range extensions {
		out[i] = string(c) + "s" + ext
	}
	return out
}

// Load reads one file per category from fsys in parallel and freezes the result.
// Categories without a file are skipped; at least one must be present.
func Load(ctx context.Context, fsys fs.FS) (*Catalog, error) {
	cats := category.All()
	sets := make([]*Set, len(cats))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range cats {
		g.Go(func() error {
			set, err := readCategory(gctx, fsys, c)
			if err != nil {
				return err
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := make([]Set, 0, len(sets))
	for _, s := range sets {
		if s != nil {
			found = append(found, *s)
		}
	}
	if len(found) == 0 {
		return nil, domain.NewCatalogError(".", "", "no category files found")
	}

	cat, err := Build(found)
	if err != nil {
		return nil, err
	}

	fields := make([]zap.Field, 0, len(found)+1)
	for _, c := range cat.Categories() {
		fields = append(fields, zap.Int(string(c), cat.Count(c)))
	}
	fields = append(fields, zap.Int("total", cat.Total()))
	logpkg.FromContext(ctx).Info("catalog loaded", fields...)
	return cat, nil
}

// readCategory returns nil, nil when no file exists for the category.
func readCategory(ctx context.Context, fsys fs.FS, c category.Category) (*Set, error) {
	for _, name := range fileNames(c) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load %s: %w", c, err)
		}
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		set, err := parseFile(name, c, data)
		if err != nil {
			return nil, err
		}
		logpkg.FromContext(ctx).Debug("catalog file parsed",
			zap.String("file", name),
			zap.String("category", string(c)),
			zap.Int("entities", len(set.Entities)),
		)
		return set, nil
	}
	return nil, nil
}

// parseFile decodes a category file. The file's category key, when set, must
// agree with the file name.
func parseFile(name string, c category.Category, data []byte) (*Set, error) {
	var dto fileDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, domain.NewCatalogError(name, "", fmt.Sprintf("decode: %v", err))
	}
	if strings.TrimSpace(dto.Category) != "" {
		declared, err := category.Parse(dto.Category)
		if err != nil {
			return nil, domain.NewCatalogError(name, "", err.Error())
		}
		if declared != c {
			return nil, domain.NewCatalogError(name, "",
				fmt.Sprintf("declares category %s, expected %s", declared, c))
		}
	}

	entities := make([]entity.Entity, 0, len(dto.Entities))
	for i, r := range dto.Entities {
		e, err := recordToEntity(r)
		if err != nil {
			ref := r.ID
			if ref == "" {
				ref = fmt.Sprintf("#%d", i)
			}
			return nil, domain.NewCatalogError(name, ref, err.Error())
		}
		entities = append(entities, e)
	}
	return &Set{Category: c, Source: name, Entities: entities}, nil
}
