package types

// FieldKey names one extractable semantic field. The engine exposes an
// explicit key-to-resolver mapping; there is no dynamic lookup by name.
type FieldKey string

const (
	FieldTitle           FieldKey = "title"
	FieldAccession       FieldKey = "accession"
	FieldCreator         FieldKey = "creator"
	FieldYear            FieldKey = "year"
	FieldPeriod          FieldKey = "period"
	FieldType            FieldKey = "type"
	FieldCreditLine      FieldKey = "creditLine"
	FieldWebPage         FieldKey = "webPage"
	FieldThumbnail       FieldKey = "thumbnailImg"
	FieldDescription     FieldKey = "description"
	FieldCitations       FieldKey = "citations"
	FieldDimensions      FieldKey = "dimensions"
	FieldMaterials       FieldKey = "materials"
	FieldAccess          FieldKey = "access"
	FieldProvenance      FieldKey = "provenance"
	FieldEncounterPlace  FieldKey = "encounterPlace"
	FieldSet             FieldKey = "set"
	FieldOwner           FieldKey = "owner"
	FieldLocation        FieldKey = "location"
	FieldTookPlaceAt     FieldKey = "tookPlaceAt"
	FieldEncounteredBy   FieldKey = "encounteredBy"
	FieldURI             FieldKey = "uri"
)

// AllFields lists every resolvable field in display order.
func AllFields() []FieldKey {
	return []FieldKey{
		FieldTitle, FieldAccession, FieldCreator, FieldYear, FieldPeriod,
		FieldType, FieldCreditLine, FieldWebPage, FieldThumbnail,
		FieldDescription, FieldCitations, FieldDimensions, FieldMaterials,
		FieldAccess, FieldProvenance, FieldEncounterPlace, FieldSet,
		FieldOwner, FieldLocation, FieldTookPlaceAt, FieldEncounteredBy,
		FieldURI,
	}
}

// ObjectRecord is the flat extraction output for one Linked Art document.
// Values are strings except citations, which is legitimately multi-valued.
// Absent fields are omitted rather than stored empty.
type ObjectRecord struct {
	URI    string
	Fields map[FieldKey]any
}

// Get returns the string value for key, or "" when absent or multi-valued.
func (r ObjectRecord) Get(key FieldKey) string {
	if s, ok := r.Fields[key].(string); ok {
		return s
	}
	return ""
}

// Strings returns the multi-valued field for key, or nil.
func (r ObjectRecord) Strings(key FieldKey) []string {
	if ss, ok := r.Fields[key].([]string); ok {
		return ss
	}
	return nil
}

// FigureRecord describes one downloaded figure image.
type FigureRecord struct {
	ID        string `json:"id" yaml:"id"`
	Src       string `json:"src" yaml:"src"`
	Caption   string `json:"caption" yaml:"caption"`
	Accession string `json:"accession,omitempty" yaml:"accession,omitempty"`
	URI       string `json:"uri" yaml:"uri"`
}
