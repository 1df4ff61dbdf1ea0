package catalog

func DefaultSettings() Settings {
	return Settings{
		HeroImageURL: "https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?auto=format&fit=crop&q=80&w=2670",
		HeroTitle:    "PRODUCT CONFIGURATOR",
		HeroSubtitle: "24/7 - find the right solution for your requirements at any time.",
		LogoURL:      "",
		CompanyName:  "KINRED",
	}
}

func seedProduct(id, name, rubric, series, description, image string, specs map[string]any, contacts []any, material, shape, bezel, connection, function string, variants int) Product {
	return Product{
		"id":                    id,
		"name":                  name,
		"rubric":                rubric,
		"series":                series,
		"description":           description,
		"imageUrl":              image,
		"technicalSpecs":        specs,
		"availableContactTypes": contacts,
		"connectionMaterial":    material,
		"shape":                 shape,
		"colorFrontBezel":       bezel,
		"connectionType":        connection,
		"switchingFunction":     function,
		"availableColors":       []any{},
		"colorImages":           map[string]any{},
		"variantCount":          float64(variants),
	}
}

func specs(protection, illumination, ring string) map[string]any {
	return map[string]any{
		"mountingHole":     "22MM",
		"protectionClass":  protection,
		"illumination":     illumination,
		"ringIllumination": ring,
	}
}

// SeedProducts returns the demo catalog written on first start.
func SeedProducts() []Product {
	products := []Product{
		seedProduct("p1", "Tactile pushbutton HQ Round", "Pushbutton", "HQ",
			"High-quality tactile pushbutton for modern control panels.",
			"https://picsum.photos/seed/hq_push/300/300",
			specs("IP65", "YES", "YES"), []any{"1NO", "2NO", "1NC+1NO"},
			"AgNi", "Round", "Black", "Screw connection", "Momentary function", 45),
		seedProduct("p2", "Selector Switch SD22 Square", "Selector button", "SD22",
			"Robust selector switch with square design.",
			"https://picsum.photos/seed/sd22_sel/300/300",
			specs("IP65", "NO", "NO"), []any{"1NO", "1NC"},
			"Gold-plated", "Square", "Silver", "Solder Pin", "Latching function", 12),
		seedProduct("p3", "E-Stop SS22", "E-stop", "SS22",
			"Emergency stop maintained switch.",
			"https://picsum.photos/seed/estop/300/300",
			specs("IP65", "YES", "NO"), []any{"2NC", "2NC+1NO"},
			"AgNi", "Round", "Yellow", "Push-In", "Twist", 5),
		seedProduct("p4", "Key Switch HQ", "Key switch", "HQ",
			"Secure key switch with rounded square shape.",
			"https://picsum.photos/seed/key_hq/300/300",
			specs("IP40", "NO", "NO"), []any{"1NO", "1NC+1NO"},
			"AgNi", "Rounded square", "Stainless steel", "Screw connection", "Latching function", 8),
		seedProduct("p5", "Buzzer SD22", "Buzzer", "SD22",
			"Acoustic signal device.",
			"https://picsum.photos/seed/buzzer/300/300",
			specs("IP65", "NO", "NO"), []any{},
			"AgNi", "Round", "Black", "Solder Pin", "Momentary function", 1),
	}

	products[0]["availableColors"] = []any{"#red", "#green", "#blue"}
	products[1]["availableColors"] = []any{"#black"}
	products[2]["availableColors"] = []any{"#red"}
	products[3]["availableColors"] = []any{"#black"}
	products[4]["availableColors"] = []any{"#black"}
	return products
}
