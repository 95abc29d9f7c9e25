package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "artcat/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for Linked Art record retrieval.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// CachePath is the JSON file holding fetched documents keyed by URI.
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// RequestDelay is the delay between consecutive dereferences (default 0).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// CatalogConfig holds paths for the YAML object/figure catalog.
type CatalogConfig struct {
	// ObjectsPath is the objects.yaml file (object_display_order + object_list).
	ObjectsPath string `json:"objects_path" yaml:"objects_path"`

	// FiguresPath is the figures.yaml file (figure_list).
	FiguresPath string `json:"figures_path" yaml:"figures_path"`

	// FieldNames maps internal field keys to the column names used in
	// objects.yaml, e.g. creator: "artist". Keys absent here keep their
	// internal names.
	FieldNames map[string]string `json:"field_names" yaml:"field_names"`
}

// ImageConfig holds settings for the figure download pipeline.
type ImageConfig struct {
	HTTPConfig `yaml:",inline"`

	// FiguresDir is the directory figure images are written to.
	FiguresDir string `json:"figures_dir" yaml:"figures_dir"`

	// HashCachePath is the JSON file mapping image content hashes to
	// figure ids, used to avoid downloading the same image twice.
	HashCachePath string `json:"hash_cache_path" yaml:"hash_cache_path"`

	// Resize is an optional resize instruction applied to the IIIF image
	// URI: a pixel count ("800") or a percentage ("50%") for the largest
	// dimension.
	Resize string `json:"resize,omitempty" yaml:"resize,omitempty"`
}

// IndexConfig holds settings for the SQLite record index.
type IndexConfig struct {
	// IndexDir is the directory containing the index database.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch      FetchConfig   `json:"fetch" yaml:"fetch"`
	Catalog    CatalogConfig `json:"catalog" yaml:"catalog"`
	Images     ImageConfig   `json:"images" yaml:"images"`
	Index      IndexConfig   `json:"index" yaml:"index"`
	Vocabulary Vocabulary    `json:"vocabulary" yaml:"vocabulary"`
}
