package i18n

var en = map[string]string{
	"coach.variety_good": "Great variety! You used %d proteins this week.",
	"coach.variety_low":  "Try adding another protein tomorrow to keep things balanced.",
	"coach.organ_low":    "Organ content is low (%.0f%%); consider adding organ treats.",
	"coach.organ_high":   "Organ content is high (%.0f%%); reduce organs in the next meal.",
	"coach.bone_low":     "Bone content is low (%.0f%%); add bone broth or a meaty bone next meal.",
	"coach.bone_high":    "Too much bone (%.0f%%) may cause constipation; add muscle meat.",
	"coach.low_stock":    "Low stock: about %.1f days left. Consider ordering soon.",
	"coach.treat":        "Offer %d piece(s) of %s as a treat today.",

	"plan.title":      "Today's meal for %s",
	"plan.target":     "Target: %.0f g (%.1f%% of body weight)",
	"plan.total":      "Planned: %.0f g, remaining %.0f g",
	"plan.macros":     "Muscle %.0f%% / Organ %.0f%% / Bone %.0f%%",
	"plan.empty":      "Nothing in stock fits today's target.",
	"plan.confirmed":  "Meal logged and stock updated.",
	"rotation.day":    "Day %d",
	"treats.none":     "No treats available.",
	"stock.empty":     "No stock recorded.",
	"stool.result":    "Stool check: %s (brightness %.0f)",
	"stool.healthy":   "Healthy",
	"stool.watch":     "Watch",
	"stool.vet":       "Vet",
	"pro.expired":     "Your Pro access has expired.",
	"pro.active":      "Pro is active.",
	"pro.inactive":    "Pro is not active.",
	"orders.summary":  "Order Summary",
	"orders.greeting": "Hello %s,",
	"orders.intro":    "I'd like to order:",
	"orders.total":    "Total: %s",
	"storage.memory":  "Storage is unavailable; changes are kept in memory only.",
}
