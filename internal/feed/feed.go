package feed

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"labequip/storefront/internal/domain"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	taxonomyFile  = "taxonomy.yaml"
	productsFile  = "products.yaml"
	postsFile     = "posts.yaml"
	resourcesFile = "resources.yaml"
)

// Feed holds the static tables the site is built from
type Feed struct {
	Categories []domain.Category      `yaml:"categories"`
	Types      []domain.EquipmentType `yaml:"types"`
	Products   []domain.Product       `yaml:"products"`
	Posts      []domain.Post          `yaml:"posts"`
	Resources  []domain.Resource      `yaml:"resources"`
}

// Load reads the feed from dir, or from the tables compiled into the binary when dir is empty.
// No schema validation happens here; see catalog.Validate.
func Load(dir string) (*Feed, error) {
	if dir == "" {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded feed: %w", err)
		}
		return LoadFS(sub)
	}

	log.Infof("📂 Loading content feed from %s", dir)
	return LoadFS(os.DirFS(dir))
}

func LoadFS(fsys fs.FS) (*Feed, error) {
	feed := &Feed{}

	for _, name := range []string{taxonomyFile, productsFile, postsFile, resourcesFile} {
		if err := decodeFile(fsys, name, feed); err != nil {
			return nil, err
		}
	}

	log.Debugf("Loaded feed: %d categories, %d types, %d products, %d posts, %d resources",
		len(feed.Categories), len(feed.Types), len(feed.Products), len(feed.Posts), len(feed.Resources))
	return feed, nil
}

// decodeFile merges the top-level keys of one YAML file into feed
func decodeFile(fsys fs.FS, name string, feed *Feed) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := yaml.Unmarshal(data, feed); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}

	return nil
}
