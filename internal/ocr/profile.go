package ocr

// Variable is a single Tesseract parameter.
type Variable struct {
	Name  string
	Value string
}

// Profile selects language and engine parameters for one recognition call.
type Profile struct {
	Language    string
	PageSegMode int
	Variables   []Variable
}

// ProfileFor returns the engine profile for a Tesseract language code.
func ProfileFor(lang string) Profile {
	p := Profile{
		Language:    lang,
		PageSegMode: BlockPageSegMode,
		Variables: []Variable{
			{"preserve_interword_spaces", "1"},
			{"tessedit_do_invert", "0"},
		},
	}
	if logogramLanguages[lang] {
		p.Variables = append(p.Variables,
			Variable{"language_model_ngram_on", "0"},
			Variable{"textord_force_make_prop_words", "F"},
			Variable{"edges_max_children_per_outline", "40"},
		)
	}
	return p
}

// Lookup returns the value of a variable and whether the profile sets it.
func (p Profile) Lookup(name string) (string, bool) {
	for _, v := range p.Variables {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}
