package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/glowstack/reel/internal/filters"
	"github.com/glowstack/reel/internal/store"
)

var (
	_ list.Item = filterItem{}
	_ list.Item = videoItem{}
)

// filterItem wraps [filters.Filter] to implement [list.Item].
type filterItem struct {
	filter filters.Filter
}

func (i filterItem) FilterValue() string { return i.filter.Name }
func (i filterItem) Title() string       { return fmt.Sprintf("%s %s", i.filter.Icon, i.filter.Name) }
func (i filterItem) Description() string {
	desc := fmt.Sprintf("by %s • %s likes", i.filter.CreatorName, formatLikes(i.filter.Likes))
	if i.filter.IsPremium {
		desc = fmt.Sprintf("%s • $%.2f", desc, i.filter.Price)
	}
	if i.filter.IsNew {
		desc = fmt.Sprintf("%s • new", desc)
	}
	return desc
}

// videoItem wraps [store.GeneratedVideo] to implement [list.Item].
type videoItem struct {
	video store.GeneratedVideo
	name  string
}

func (i videoItem) FilterValue() string { return i.name }
func (i videoItem) Title() string       { return i.name }
func (i videoItem) Description() string {
	desc := i.video.CreatedAt.Format("2006-01-02 15:04")
	if i.video.Model != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.video.Model)
	}
	return desc
}

func formatLikes(likes int) string {
	if likes >= 1000 {
		return fmt.Sprintf("%.1fk", float64(likes)/1000)
	}
	return fmt.Sprintf("%d", likes)
}
