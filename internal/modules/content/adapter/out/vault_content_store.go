package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flo8/internal/modules/content/domain"
	contentout "flo8/internal/modules/content/port/out"
	"flo8/internal/platform/markdown"
	"flo8/internal/platform/slug"
)

// VaultContentStore reads programme content from markdown files with YAML
// frontmatter, one subdirectory per kind under the content directory. The
// filename is the slug.
type VaultContentStore struct {
	contentPath string
}

func NewVaultContentStore(contentPath string) *VaultContentStore {
	return &VaultContentStore{contentPath: contentPath}
}

var _ contentout.ContentStore = (*VaultContentStore)(nil)

func (s *VaultContentStore) List(_ context.Context) ([]domain.Item, error) {
	out := []domain.Item{}
	for _, kind := range domain.Kinds() {
		glob := filepath.Join(s.contentPath, string(kind), "*.md")
		matches, err := filepath.Glob(glob)
		if err != nil {
			return nil, fmt.Errorf("glob %s content: %w", kind, err)
		}
		sort.Strings(matches)
		for _, path := range matches {
			item, err := s.readItem(kind, path)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *VaultContentStore) readItem(kind domain.Kind, path string) (domain.Item, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Item{}, fmt.Errorf("read %s: %w", path, err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(content))
	if err != nil {
		return domain.Item{}, fmt.Errorf("parse %s: %w", path, err)
	}
	item := domain.Item{
		ID:               asString(meta["id"]),
		Kind:             kind,
		Title:            asString(meta["title"]),
		Tags:             asStringSlice(meta["tags"]),
		Goals:            asStringSlice(meta["goals"]),
		MobilityFriendly: asBool(meta["mobility_friendly"]),
		Minutes:          int(asFloat(meta["minutes"])),
		Body:             body,
		FilePath:         path,
		GuidePath:        asString(meta["guide_path"]),
		Source:           "vault",
	}
	item.Slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if item.ID == "" {
		item.ID = "itm-" + item.Slug
	}
	if item.GuidePath != "" && !filepath.IsAbs(item.GuidePath) {
		item.GuidePath = filepath.Join(s.contentPath, item.GuidePath)
	}
	if err := item.Validate(); err != nil {
		return domain.Item{}, fmt.Errorf("decode content %s: %w", path, err)
	}
	return item, nil
}

// Save writes an item as a markdown file, used by the init scaffold.
func (s *VaultContentStore) Save(_ context.Context, item domain.Item) (string, error) {
	if item.Slug == "" {
		item.Slug = slug.Make(item.Title)
	}
	if item.ID == "" {
		item.ID = "itm-" + item.Slug
	}
	if err := item.Validate(); err != nil {
		return "", err
	}
	path := filepath.Join(s.contentPath, string(item.Kind), item.Slug+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create content directory: %w", err)
	}
	rendered, err := markdown.RenderFrontmatter(toFrontmatter(item), item.Body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write content markdown: %w", err)
	}
	return path, nil
}

func toFrontmatter(item domain.Item) map[string]any {
	return map[string]any{
		"schema_version":    domain.SchemaVersion,
		"id":                item.ID,
		"title":             item.Title,
		"tags":              item.Tags,
		"goals":             item.Goals,
		"mobility_friendly": item.MobilityFriendly,
		"minutes":           item.Minutes,
		"guide_path":        item.GuidePath,
	}
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	case float32:
		return float64(x)
	case string:
		var out float64
		_, _ = fmt.Sscanf(x, "%f", &out)
		return out
	default:
		return 0
	}
}

func asBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == "true"
	default:
		return false
	}
}

func asStringSlice(v any) []string {
	if v == nil {
		return nil
	}
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}
