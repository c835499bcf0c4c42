package cache

// Keyer builds cache keys for the entries the pipeline stores.
type Keyer interface {
	// HTTPKey identifies a fetched remote drawing.
	HTTPKey(namespace, key string) string
	// ModelKey identifies a parsed drawing by the hash of its source bytes.
	ModelKey(sourceHash string, opts ModelKeyOpts) string
	// ArtifactKey identifies one rendered output of a model.
	ArtifactKey(modelHash string, opts ArtifactKeyOpts) string
}

// ModelKeyOpts are the inputs that change how source bytes are parsed.
type ModelKeyOpts struct {
	Format string `json:"format"` // dxf or json
}

// ArtifactKeyOpts are the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Rotation    float64 `json:"rotation"`
	Lineweights bool    `json:"lineweights"`
	Scale       float64 `json:"scale,omitempty"`
	Quality     int     `json:"quality,omitempty"`
	Background  string  `json:"background,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	EmbedFont   bool    `json:"embed_font,omitempty"`
	Isolate     bool    `json:"isolate,omitempty"`
	MaxDepth    int     `json:"max_depth,omitempty"`
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ModelKey hashes the source hash together with the parse options.
func (DefaultKeyer) ModelKey(sourceHash string, opts ModelKeyOpts) string {
	return hashKey("model", sourceHash, opts)
}

// ArtifactKey hashes the model hash together with the render options.
func (DefaultKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", modelHash, opts)
}

var _ Keyer = DefaultKeyer{}
