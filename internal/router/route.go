// package router maps URL-style fragments to typed routes and tracks
// navigation direction.
//
// The fragment scheme mirrors the app's shareable addresses:
//
//	#/home  #/feed  #/create  #/filter/<id>  #/onboarding/<step>
//
// Parsing is total: any unrecognized fragment resolves to the home route.
package router

import "strings"

// Page enumerates the top-level destinations of the app.
type Page int

const (
	PageHome Page = iota
	PageFeed
	PageCreate
	PageFilter
	PageOnboarding
)

func (p Page) String() string {
	switch p {
	case PageFeed:
		return "feed"
	case PageCreate:
		return "create"
	case PageFilter:
		return "filter"
	case PageOnboarding:
		return "onboarding"
	default:
		return "home"
	}
}

// Step enumerates the onboarding flow screens in their forward order.
type Step int

const (
	StepIntro Step = iota
	StepUpload
	StepFakeProcessing
	StepPreview
	StepPayment
	StepProcessing
	StepResult
)

func (s Step) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepFakeProcessing:
		return "fakeProcessing"
	case StepPreview:
		return "preview"
	case StepPayment:
		return "payment"
	case StepProcessing:
		return "processing"
	case StepResult:
		return "result"
	default:
		return "intro"
	}
}

// ParseStep resolves a fragment segment to a [Step]. Unknown segments
// report false and default to [StepIntro].
func ParseStep(raw string) (Step, bool) {
	switch raw {
	case "intro":
		return StepIntro, true
	case "upload":
		return StepUpload, true
	case "fakeProcessing":
		return StepFakeProcessing, true
	case "preview":
		return StepPreview, true
	case "payment":
		return StepPayment, true
	case "processing":
		return StepProcessing, true
	case "result":
		return StepResult, true
	default:
		return StepIntro, false
	}
}

// Route is the parsed, typed representation of where the app currently is.
//
// Step is meaningful only when Page is [PageOnboarding], FilterID only when
// Page is [PageFilter].
type Route struct {
	Page     Page
	Step     Step
	FilterID string
}

// Home returns the default route.
func Home() Route { return Route{Page: PageHome} }

// Onboarding returns the route for an onboarding step.
func Onboarding(step Step) Route { return Route{Page: PageOnboarding, Step: step} }

// Filter returns the detail route for a filter id.
func Filter(id string) Route { return Route{Page: PageFilter, FilterID: id} }

// Parse resolves a fragment to a [Route]. It never fails: unrecognized
// input, a filter segment without an id, or an unknown onboarding step all
// fall back to a valid route.
func Parse(fragment string) Route {
	fragment = strings.TrimPrefix(fragment, "#")

	var parts []string
	for _, p := range strings.Split(fragment, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) == 0 {
		return Home()
	}

	switch parts[0] {
	case "onboarding":
		step := StepIntro
		if len(parts) > 1 {
			step, _ = ParseStep(parts[1])
		}
		return Onboarding(step)
	case "filter":
		if len(parts) > 1 {
			return Filter(parts[1])
		}
		return Home()
	case "create":
		return Route{Page: PageCreate}
	case "feed":
		return Route{Page: PageFeed}
	default:
		return Home()
	}
}

// Fragment encodes the route back into its fragment form. It is the inverse
// of [Parse] for all canonical routes.
func (r Route) Fragment() string {
	switch r.Page {
	case PageOnboarding:
		return "#/onboarding/" + r.Step.String()
	case PageFilter:
		return "#/filter/" + r.FilterID
	default:
		return "#/" + r.Page.String()
	}
}

// Key derives a stable identifier for scroll-position bookkeeping.
func (r Route) Key() string {
	switch r.Page {
	case PageFilter:
		return "filter-" + r.FilterID
	case PageOnboarding:
		return "onboarding-" + r.Step.String()
	default:
		return r.Page.String()
	}
}
