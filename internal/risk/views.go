package risk

// View is a screen of the app
type View string

const (
	ViewDashboard   View = "DASHBOARD"
	ViewBudget      View = "BUDGET"
	ViewCalculators View = "CALCULATORS"
	ViewRiskBot     View = "RISK_BOT"
	ViewSchemes     View = "SCHEMES"
	ViewAdvisor     View = "ADVISOR"
)

// Views lists the screens open for a tier; the advisor needs a known profile
func Views(t Tier) []View {
	views := []View{ViewDashboard, ViewBudget, ViewCalculators, ViewRiskBot, ViewSchemes}
	if t.Known() {
		views = append(views, ViewAdvisor)
	}
	return views
}

// Allows reports whether v is open for t
func Allows(t Tier, v View) bool {
	for _, open := range Views(t) {
		if open == v {
			return true
		}
	}
	return false
}

// CallToAction is the dashboard prompt for the risk card
func CallToAction(t Tier) string {
	if t.Known() {
		return "Re-evaluate Profile"
	}
	return "Analyze Risk Now"
}

// Blurb is the dashboard caption under the tier
func Blurb(t Tier) string {
	if t.Known() {
		return "Your investment strategy is optimized for this level."
	}
	return "Chat with our AI to analyze your financial heartbeat."
}
