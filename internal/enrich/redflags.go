package enrich

// Red flag warning categories.
const (
	CategoryCompensation    = "compensation"
	CategoryWorkLife        = "work_life"
	CategoryCompanyCulture  = "company_culture"
	CategoryUnrealistic     = "unrealistic_expectations"
	CategoryVague           = "vague_requirements"
	CategoryDemanding       = "demanding"
)

type redFlagCategory struct {
	name    string
	phrases []string
}

// redFlagCategories lists every problematic-hiring-practice phrase the
// analyzer scans for, grouped by category. Order is the reporting order.
var redFlagCategories = []redFlagCategory{
	{
		name: CategoryCompensation,
		phrases: []string{
			"unpaid", "no salary", "work for equity", "exposure",
			"sweat equity", "deferred compensation", "commission only",
			"potential to earn", "unlimited earning potential",
		},
	},
	{
		name: CategoryWorkLife,
		phrases: []string{
			"unlimited overtime", "long hours expected", "nights and weekends",
			"must be available 24/7", "on call 24/7", "no work life balance",
			"hustle culture", "grind", "sacrifice", "all hands on deck",
		},
	},
	{
		name: CategoryCompanyCulture,
		phrases: []string{
			"family atmosphere", "we're like a family", "pizza parties",
			"fun work environment", "ping pong table", "beer on tap",
			"casual fridays", "work hard play hard", "fast paced startup",
		},
	},
	{
		name: CategoryUnrealistic,
		phrases: []string{
			"wear many hats", "many hats", "jack of all trades",
			"unicorn", "rockstar", "ninja", "guru", "wizard",
			"10x engineer", "full stack ninja", "growth hacker",
			"passionate only", "must be passionate", "must love",
			"obsessed with", "eat sleep code",
		},
	},
	{
		name: CategoryVague,
		phrases: []string{
			"self starter", "self-starter", "motivated individual",
			"go getter", "proactive", "takes initiative",
			"figure it out", "hit the ground running",
			"little to no guidance",
		},
	},
	{
		name: CategoryDemanding,
		phrases: []string{
			"perfectionist", "attention to detail required",
			"no room for error", "zero mistakes", "flawless execution",
			"elite performance", "only the best", "top talent only",
		},
	},
}

var positiveIndicators = []string{
	"competitive salary", "401k", "health insurance", "benefits",
	"remote", "flexible hours", "work life balance", "pto", "vacation",
	"professional development", "training", "growth opportunities",
	"collaborative", "supportive", "mentorship",
}

var negativeIndicators = []string{
	"urgent", "immediately available", "asap", "immediate start",
	"tight deadline", "aggressive timeline", "pressure", "stress",
}
