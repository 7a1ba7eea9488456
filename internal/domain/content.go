package domain

import (
	"encoding/json"

	"github.com/alexdoe/folio/pkg/errors"
)

type SocialLinks struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Profile is the owner's hero-section record. All fields are strings; absent
// social links stay empty and the view layer hides them.
type Profile struct {
	Name   string      `json:"name"`
	Title  string      `json:"title"`
	Bio    string      `json:"bio"`
	Email  string      `json:"email"`
	Avatar string      `json:"avatar"`
	Social SocialLinks `json:"social"`
}

type AboutContent struct {
	Image      string `json:"image"`
	Paragraph1 string `json:"paragraph1"`
	Paragraph2 string `json:"paragraph2"`
	Paragraph3 string `json:"paragraph3"`
}

// Content is the aggregate the whole system persists, syncs and exports.
// Field names are the wire format shared with the view layer and the remote
// blob store.
type Content struct {
	Profile  Profile         `json:"profile"`
	Projects []Project       `json:"projects"`
	Skills   []SkillCategory `json:"skills"`
	About    AboutContent    `json:"aboutContent"`
}

var requiredContentFields = []string{"profile", "projects", "skills", "aboutContent"}

// DecodeContent parses a full content document, validating that all four
// top-level fields are present before accepting it. Legacy single-image
// projects are migrated to the canonical image list during decoding.
func DecodeContent(data []byte) (*Content, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewParseError("content document is not valid JSON", "content", err)
	}

	for _, field := range requiredContentFields {
		if _, ok := raw[field]; !ok {
			return nil, errors.NewValidationError("content document is missing a required field", field, nil)
		}
	}

	var content Content
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, errors.NewParseError("content document has a malformed field", "content", err)
	}

	return &content, nil
}

// Encode serializes the content in the shared wire format, indented for
// export downloads.
func (c *Content) Encode() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Clone returns a deep copy. Handlers hand copies to callers so the store's
// whole-record-replace discipline cannot be bypassed through shared slices.
func (c *Content) Clone() *Content {
	out := &Content{
		Profile: c.Profile,
		About:   c.About,
	}
	out.Projects = make([]Project, len(c.Projects))
	for i, p := range c.Projects {
		out.Projects[i] = p.Clone()
	}
	out.Skills = make([]SkillCategory, len(c.Skills))
	for i, s := range c.Skills {
		out.Skills[i] = s.Clone()
	}
	return out
}
