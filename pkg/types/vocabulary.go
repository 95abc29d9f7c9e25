package types

// Vocabulary holds the controlled-vocabulary concept identifiers the
// extraction engine recognizes. A semantic field may be tagged with any of
// several equivalent identifiers across data sources, so each field carries
// a set. The defaults cover Yale LUX and Getty AAT; tests substitute fake
// identifiers without touching resolver logic.
type Vocabulary struct {
	PrimaryName         []string `json:"primary_name" yaml:"primary_name"`
	English             []string `json:"english" yaml:"english"`
	Accession           []string `json:"accession" yaml:"accession"`
	ObjectType          []string `json:"object_type" yaml:"object_type"`
	Period              []string `json:"period" yaml:"period"`
	CreditLine          []string `json:"credit_line" yaml:"credit_line"`
	WebPage             []string `json:"web_page" yaml:"web_page"`
	Thumbnail           []string `json:"thumbnail" yaml:"thumbnail"`
	Description         []string `json:"description" yaml:"description"`
	Citation            []string `json:"citation" yaml:"citation"`
	DimensionsStatement []string `json:"dimensions_statement" yaml:"dimensions_statement"`
	AccessStatement     []string `json:"access_statement" yaml:"access_statement"`
	MaterialsStatement  []string `json:"materials_statement" yaml:"materials_statement"`
	Provenance          []string `json:"provenance" yaml:"provenance"`

	// PreferredTerm classifies the preferred label of a vocabulary term.
	PreferredTerm string `json:"preferred_term" yaml:"preferred_term"`

	// PositionalAttribute marks dimension entries that enumerate data
	// values rather than physical measurements; such entries are excluded
	// from dimension statements.
	PositionalAttribute string `json:"positional_attribute" yaml:"positional_attribute"`

	// FindSpotNote is the source-specific classification for free-text
	// find-spot annotations.
	FindSpotNote string `json:"find_spot_note" yaml:"find_spot_note"`

	// VocabHost is the vocabulary service whose term URIs need the
	// VocabSuffix appended before dereferencing.
	VocabHost   string `json:"vocab_host" yaml:"vocab_host"`
	VocabSuffix string `json:"vocab_suffix" yaml:"vocab_suffix"`
}

const luxConcept = "https://lux.collections.yale.edu/data/concept/"

// DefaultVocabulary returns the concept identifier sets for Yale LUX and
// Getty AAT sources.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		PrimaryName: []string{
			luxConcept + "f7ef5bb4-e7fb-443d-9c6b-371a23e717ec",
			"http://vocab.getty.edu/aat/300404670",
		},
		English: []string{
			luxConcept + "dfa53b96-4eda-4c9a-b091-10008a726c38",
			"http://vocab.getty.edu/aat/300388277",
		},
		Accession: []string{
			luxConcept + "3d9696be-0b9a-4a3d-b380-7584fbf96ac7",
			"http://vocab.getty.edu/aat/300312355",
		},
		ObjectType: []string{
			luxConcept + "4ea65dc4-76bc-45b7-b54c-a1ca4783d4e2",
			"http://vocab.getty.edu/aat/300435443",
		},
		Period: []string{
			luxConcept + "c1cb739d-db1e-4e93-bb03-64f135e0b4cb",
			"http://vocab.getty.edu/aat/300081446",
		},
		CreditLine: []string{
			luxConcept + "7c0ba119-47cb-4ade-8aa3-32a1e66c8ca9",
			"http://vocab.getty.edu/aat/300435418",
		},
		WebPage: []string{
			luxConcept + "2eca07bd-be42-4ef5-9ec5-87c1bbfe639d",
			"http://vocab.getty.edu/aat/300264578",
		},
		Thumbnail: []string{
			luxConcept + "b28a48ef-4d40-44d1-81c9-27f0411b030b",
			"http://vocab.getty.edu/aat/300215302",
		},
		Description: []string{
			luxConcept + "b9d84f17-662e-46ef-ab8b-7499717f8337",
			"http://vocab.getty.edu/aat/300435416",
			"http://vocab.getty.edu/aat/300080091",
		},
		Citation: []string{
			luxConcept + "ceef9d2e-1a07-4269-827f-8c407e4d4711",
			"http://vocab.getty.edu/aat/300311705",
			"http://vocab.getty.edu/aat/300026497",
		},
		DimensionsStatement: []string{
			luxConcept + "53922f57-dab5-43c5-a527-fc20a63fe128",
			"http://vocab.getty.edu/aat/300435430",
		},
		AccessStatement: []string{
			luxConcept + "03f4eb19-0611-4f31-8e09-fc111c52f898",
			"http://vocab.getty.edu/aat/300133046",
		},
		MaterialsStatement: []string{
			luxConcept + "a51a170c-211c-4cc1-bb11-52e24836117f",
			"http://vocab.getty.edu/aat/300435429",
		},
		Provenance: []string{
			luxConcept + "dd8b8c75-3f4b-4071-a231-161ae556e572",
			"http://vocab.getty.edu/aat/300435438",
		},
		PreferredTerm:       "http://vocab.getty.edu/aat/300404670",
		PositionalAttribute: "http://vocab.getty.edu/aat/300010269",
		FindSpotNote:        "https://data.getty.edu/museum/ontology/linked-data/tms/object/place/found",
		VocabHost:           "https://vocab.getty.edu",
		VocabSuffix:         ".json",
	}
}
