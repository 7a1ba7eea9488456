package domain

import (
	"encoding/json"

	"github.com/alexdoe/folio/internal/constants"
)

// Project holds one portfolio entry. The ordered image list is the canonical
// representation; tag order and duplicates are owner's choice. List position
// is the only identity a project has.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
	LiveURL     string   `json:"liveUrl,omitempty"`
	RepoURL     string   `json:"repoUrl,omitempty"`
}

// projectWire carries both the canonical image list and the legacy single
// "image" field that earlier content snapshots used.
type projectWire struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	LiveURL     string   `json:"liveUrl,omitempty"`
	RepoURL     string   `json:"repoUrl,omitempty"`
}

// UnmarshalJSON migrates legacy single-image projects into the canonical
// list form at decode time, so nothing downstream branches on the variant.
func (p *Project) UnmarshalJSON(data []byte) error {
	var wire projectWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	p.Title = wire.Title
	p.Description = wire.Description
	p.Images = wire.Images
	p.Tags = wire.Tags
	p.LiveURL = wire.LiveURL
	p.RepoURL = wire.RepoURL

	if len(p.Images) == 0 && wire.Image != "" {
		p.Images = []string{wire.Image}
	}
	return nil
}

// ImageURLs returns the display list, falling back to a placeholder when the
// owner has not attached any image.
func (p *Project) ImageURLs() []string {
	if len(p.Images) == 0 {
		return []string{constants.PlaceholderImage}
	}
	return p.Images
}

func (p Project) Clone() Project {
	out := p
	out.Images = append([]string(nil), p.Images...)
	out.Tags = append([]string(nil), p.Tags...)
	return out
}
