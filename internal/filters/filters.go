// package filters holds the static filter catalog shown on the home page.
package filters

// Category groups filters into home-page sections.
type Category string

const (
	CategoryTrending Category = "trending"
	CategoryNew      Category = "new"
	CategoryPandora  Category = "pandora"
	CategoryViral    Category = "viral"
	CategoryWinter   Category = "winter"
	CategoryPopular  Category = "popular"
)

// Filter describes one catalog entry.
type Filter struct {
	ID            string
	Name          string
	Icon          string
	Category      Category
	CreatorName   string
	Likes         int
	Price         float64
	IsNew         bool
	IsPremium     bool
	AIEnabled     bool // uses the real generation backend
	IntroTitle    string
	IntroSubtitle string
}

// Section is a titled group of filters.
type Section struct {
	ID      string
	Title   string
	Filters []Filter
}

var catalog = []Filter{
	{ID: "glam-ai-1", Name: "Glam AI", Icon: "✨", Category: CategoryTrending, CreatorName: "Glam AI", Likes: 3200, Price: 9.99, IsPremium: true, AIEnabled: true, IntroTitle: "Glam AI", IntroSubtitle: "Transform into your most glamorous self"},
	{ID: "portrait-pro", Name: "Portrait Pro", Icon: "📸", Category: CategoryTrending, CreatorName: "JovanyPauc", Likes: 2800, Price: 9.99, IsNew: true, AIEnabled: true, IntroTitle: "Portrait Pro", IntroSubtitle: "Professional portrait enhancement"},
	{ID: "mystic-glow", Name: "Mystic Glow", Icon: "🔮", Category: CategoryPandora, CreatorName: "Glam AI", Likes: 3000, Price: 9.99, IsPremium: true, IntroTitle: "Mystic Glow", IntroSubtitle: "Add ethereal lighting effects"},
	{ID: "fire-effect", Name: "Fire Effect", Icon: "🔥", Category: CategoryPandora, CreatorName: "EmeliaBeer", Likes: 97000, Price: 9.99, IntroTitle: "Fire Effect", IntroSubtitle: "Dramatic fire and flame effects"},
	{ID: "dance-sync", Name: "Dance Sync", Icon: "💃", Category: CategoryViral, CreatorName: "DanceBot", Likes: 120000, Price: 9.99, IntroTitle: "Dance Sync", IntroSubtitle: "Sync your moves to trending dances"},
	{ID: "cartoon-me", Name: "Cartoon Me", Icon: "🎨", Category: CategoryViral, CreatorName: "ToonMaster", Likes: 156000, Price: 9.99, IntroTitle: "Cartoon Me", IntroSubtitle: "Transform into cartoon style"},
	{ID: "neon-dreams", Name: "Neon Dreams", Icon: "🌈", Category: CategoryNew, CreatorName: "NeonLab", Likes: 1200, Price: 9.99, IsNew: true, IntroTitle: "Neon Dreams", IntroSubtitle: "Vibrant neon color effects"},
	{ID: "vintage-film", Name: "Vintage Film", Icon: "🎬", Category: CategoryNew, CreatorName: "FilmGrain", Likes: 890, Price: 9.99, IsNew: true, IntroTitle: "Vintage Film", IntroSubtitle: "Classic film grain look"},
	{ID: "snow-queen", Name: "Snow Queen", Icon: "❄️", Category: CategoryWinter, CreatorName: "FrostAI", Likes: 34000, Price: 9.99, IntroTitle: "Snow Queen", IntroSubtitle: "Icy winter transformation"},
	{ID: "northern-lights", Name: "Northern Lights", Icon: "🌌", Category: CategoryWinter, CreatorName: "AuroraAI", Likes: 67000, Price: 9.99, IntroTitle: "Northern Lights", IntroSubtitle: "Magical aurora effects"},
	{ID: "beauty-plus", Name: "Beauty Plus", Icon: "💄", Category: CategoryPopular, CreatorName: "BeautyAI", Likes: 234000, Price: 9.99, IntroTitle: "Beauty Plus", IntroSubtitle: "Enhance your natural beauty"},
	{ID: "age-filter", Name: "Age Filter", Icon: "👶", Category: CategoryPopular, CreatorName: "TimeLapse", Likes: 567000, Price: 9.99, IntroTitle: "Age Filter", IntroSubtitle: "See yourself at any age"},
}

// All returns the full catalog in display order.
func All() []Filter {
	out := make([]Filter, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a filter by id.
func ByID(id string) (Filter, bool) {
	for _, f := range catalog {
		if f.ID == id {
			return f, true
		}
	}
	return Filter{}, false
}

// Sections groups the catalog by category for the home page.
func Sections() []Section {
	order := []struct {
		cat   Category
		title string
	}{
		{CategoryTrending, "Trending"},
		{CategoryViral, "Viral"},
		{CategoryNew, "New"},
		{CategoryPandora, "Pandora"},
		{CategoryWinter, "Winter"},
		{CategoryPopular, "Popular"},
	}

	sections := make([]Section, 0, len(order))
	for _, o := range order {
		s := Section{ID: string(o.cat), Title: o.title}
		for _, f := range catalog {
			if f.Category == o.cat {
				s.Filters = append(s.Filters, f)
			}
		}
		if len(s.Filters) > 0 {
			sections = append(sections, s)
		}
	}
	return sections
}
