package dashboard

// Plan is a pricing tier. Which tier a campaign sits in is derived from
// its daily prospect limit; the brackets are inclusive upper bounds.
type Plan struct {
	Name       string
	DailyLimit int // Prospects per day included in the tier.
	Price      int // Monthly cost in USD.
}

// Plans in ascending order. Used both for the create-section plan cards
// and for highlighting the active tier on the manage form.
var Plans = []Plan{
	{Name: "Starter", DailyLimit: 4, Price: 149},
	{Name: "Professional", DailyLimit: 15, Price: 299},
	{Name: "Dominator", DailyLimit: 50, Price: 499},
}

// PlanFor returns the tier whose bracket contains the given daily
// prospect limit: <=4 Starter, <=15 Professional, above that Dominator.
func PlanFor(dailyLimit int) Plan {
	if dailyLimit <= Plans[0].DailyLimit {
		return Plans[0]
	}
	if dailyLimit <= Plans[1].DailyLimit {
		return Plans[1]
	}
	return Plans[2]
}
