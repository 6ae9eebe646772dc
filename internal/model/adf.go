package model

// ADFDoc is a minimal Atlassian Document Format document, enough to express
// the labeled-paragraph descriptions this pipeline emits.
type ADFDoc struct {
	Type    string    `json:"type"`
	Version int       `json:"version"`
	Content []ADFNode `json:"content"`
}

// ADFNode is a paragraph or text node.
type ADFNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Marks   []ADFMark `json:"marks,omitempty"`
	Content []ADFNode `json:"content,omitempty"`
}

// ADFMark is a text formatting mark.
type ADFMark struct {
	Type string `json:"type"`
}

// NewADFDoc creates an empty version-1 document.
func NewADFDoc() *ADFDoc {
	return &ADFDoc{Type: "doc", Version: 1}
}

// AddLabeledParagraph appends a paragraph of the form "<Label:> value" with
// the label rendered bold.
func (d *ADFDoc) AddLabeledParagraph(label, value string) {
	d.Content = append(d.Content, ADFNode{
		Type: "paragraph",
		Content: []ADFNode{
			{Type: "text", Text: label + ": ", Marks: []ADFMark{{Type: "strong"}}},
			{Type: "text", Text: value},
		},
	})
}

// AddLabelParagraph appends a bold label-only paragraph, used to head a
// following free-text block.
func (d *ADFDoc) AddLabelParagraph(label string) {
	d.Content = append(d.Content, ADFNode{
		Type: "paragraph",
		Content: []ADFNode{
			{Type: "text", Text: label + ": ", Marks: []ADFMark{{Type: "strong"}}},
		},
	})
}

// AddTextParagraph appends a plain text paragraph.
func (d *ADFDoc) AddTextParagraph(text string) {
	d.Content = append(d.Content, ADFNode{
		Type: "paragraph",
		Content: []ADFNode{
			{Type: "text", Text: text},
		},
	})
}
