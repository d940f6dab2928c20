// Package dashboard serves the sample content behind the dashboard and
// discover pages. Nothing here is read from the document store.
package dashboard

import (
	"fmt"
	"strings"
)

const (
	ViewAnalytics = "analytics"
	ViewManage    = "manage"
	ViewPayments  = "payments"
	ViewContacts  = "contacts"
)

type SidebarItem struct {
	Label string `json:"label"`
	View  string `json:"view"`
}

var sidebar = []SidebarItem{
	{Label: "Dashboard", View: ViewAnalytics},
	{Label: "Manage Cards", View: ViewManage},
	{Label: "Manage Payments", View: ViewPayments},
	{Label: "Contacts", View: ViewContacts},
}

type Metric struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Note   string `json:"note"`
}

type DayScans struct {
	Day   string `json:"day"`
	Scans int    `json:"scans"`
}

type CityScans struct {
	City  string `json:"city"`
	Scans int    `json:"scans"`
}

type Analytics struct {
	Metrics       []Metric    `json:"metrics"`
	ScansOverTime []DayScans  `json:"scansOverTime"`
	TopCities     []CityScans `json:"topCities"`
}

type SampleCard struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
	URL     string `json:"url"`
}

type Skill struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

type Talent struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Location string  `json:"location"`
	Skills   []Skill `json:"skills"`
}

var analytics = Analytics{
	Metrics: []Metric{
		{Title: "Total Scans", Value: "12,483", Change: "+12.5%", Note: "+8% vs last week"},
		{Title: "Unique Visitors", Value: "7,902", Change: "+5%", Note: "Growth from last week"},
		{Title: "Cards Shared", Value: "1,238", Change: "+12%", Note: "Strong engagement"},
		{Title: "Conversion Rate", Value: "3.9%", Change: "+0.4pp", Note: "Steady performance increase"},
	},
	ScansOverTime: []DayScans{
		{"Mon", 140}, {"Tue", 200}, {"Wed", 180}, {"Thu", 250},
		{"Fri", 300}, {"Sat", 400}, {"Sun", 360},
	},
	TopCities: []CityScans{
		{"New York", 420}, {"London", 350}, {"Tokyo", 300}, {"Berlin", 200}, {"Paris", 180},
	},
}

var talents = []Talent{
	{ID: 1, Name: "Sarah Chen", Title: "Senior Product Designer", Location: "San Francisco, CA",
		Skills: []Skill{{Name: "UI/UX Design"}, {Name: "Product Strategy"}, {Name: "Design Systems", Count: 3}}},
	{ID: 2, Name: "Alex Rodriguez", Title: "Frontend Developer", Location: "New York, NY",
		Skills: []Skill{{Name: "React"}, {Name: "TypeScript"}, {Name: "Next.js", Count: 2}}},
	{ID: 3, Name: "Maya Patel", Title: "Data Scientist", Location: "Austin, TX",
		Skills: []Skill{{Name: "Python"}, {Name: "Machine Learning"}, {Name: "SQL", Count: 2}}},
	{ID: 4, Name: "David Kim", Title: "Product Manager", Location: "Seattle, WA",
		Skills: []Skill{{Name: "Product Strategy"}, {Name: "Agile"}, {Name: "Analytics", Count: 2}}},
	{ID: 5, Name: "Emma Wilson", Title: "Marketing Director", Location: "Los Angeles, CA",
		Skills: []Skill{{Name: "Digital Marketing"}, {Name: "Brand Strategy"}, {Name: "Content Marketing", Count: 2}}},
	{ID: 6, Name: "James Thompson", Title: "DevOps Engineer", Location: "Denver, CO",
		Skills: []Skill{{Name: "AWS"}, {Name: "Docker"}, {Name: "Kubernetes", Count: 3}}},
}

type DashboardUseCase struct {
	publicURL string
}

func NewDashboardUseCase(publicURL string) *DashboardUseCase {
	return &DashboardUseCase{publicURL: strings.TrimSuffix(publicURL, "/")}
}

func (uc *DashboardUseCase) Sidebar() []SidebarItem {
	return sidebar
}

// ResolveView maps the requested view onto a known one. An empty view is the
// analytics overview; unknown views report false.
func (uc *DashboardUseCase) ResolveView(view string) (string, bool) {
	if view == "" {
		return ViewAnalytics, true
	}
	for _, item := range sidebar {
		if item.View == view {
			return view, true
		}
	}
	return view, false
}

func (uc *DashboardUseCase) Analytics() Analytics {
	return analytics
}

func (uc *DashboardUseCase) Cards() []SampleCard {
	return []SampleCard{
		{ID: 1, Name: "Jane Doe", Title: "Product Designer", Company: "Acme Co.", URL: uc.cardURL("jane-doe")},
		{ID: 2, Name: "John Smith", Title: "Founder", Company: "Smith Labs", URL: uc.cardURL("john-smith")},
	}
}

func (uc *DashboardUseCase) cardURL(slug string) string {
	return fmt.Sprintf("%s/card/%s", uc.publicURL, slug)
}

// FilterTalents returns the sample talents whose name, title or any skill
// contains query, ignoring case. A blank query returns every talent.
func (uc *DashboardUseCase) FilterTalents(query string) []Talent {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return talents
	}

	var out []Talent
	for _, t := range talents {
		if matches(t, query) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t Talent, query string) bool {
	if strings.Contains(strings.ToLower(t.Name), query) || strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	for _, s := range t.Skills {
		if strings.Contains(strings.ToLower(s.Name), query) {
			return true
		}
	}
	return false
}
