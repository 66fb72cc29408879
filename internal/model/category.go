package model

// Categories — фиксированный набор рубрик объявлений
var Categories = []string{
	"Tanks",
	"Healers",
	"DD",
	"Merchants",
	"Guildmasters",
	"Questgivers",
	"Blacksmiths",
	"Leatherworkers",
	"Potion Masters",
	"Spellmasters",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
