package web

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Messages are keyed by their literal English source string; the English
// catalog is the identity mapping.
var translations = map[language.Tag]map[string]string{
	language.Dutch: {
		"Lizard Geodin shows measurement data imported from Fugro's Geodin API.": "Lizard Geodin toont meetgegevens uit Fugro's Geodin API.",
		"Overview":                              "Overzicht",
		"Suppliers":                             "Leveranciers",
		"Supplier":                              "Leverancier",
		"Projects":                              "Projecten",
		"Measurements":                          "Metingen",
		"Measurement":                           "Meting",
		"API starting points":                   "API-startpunten",
		"Warning: no points":                    "Waarschuwing: geen punten",
		"No project has been activated yet.":    "Er is nog geen project geactiveerd.",
		"Points":                                "Punten",
		"Fields":                                "Velden",
		"This project has no synced data yet.":  "Dit project heeft nog geen gesynchroniseerde data.",
		"Page not found":                        "Pagina niet gevonden",
		"Back to the overview":                  "Terug naar het overzicht",
	},
}

func init() {
	for tag, catalog := range translations {
		for key, translation := range catalog {
			if err := message.SetString(tag, key, translation); err != nil {
				panic(err)
			}
		}
	}
}
