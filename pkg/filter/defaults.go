package filter

// DefaultConfig returns the built-in schema used when nothing is stored yet.
func DefaultConfig() *Config {
	return &Config{
		Groups: []Group{
			{
				ID:    "category",
				Label: "CATEGORY",
				Fields: []Field{
					{
						ID:        "categoryType",
						Label:     "Combiner Type",
						PartField: "categoryType",
						Options:   sameOptions("DC Combiner Box", "AC Combiner Box"),
					},
				},
			},
			{
				ID:    "string",
				Label: "STRING",
				Fields: []Field{
					{
						ID:        "inputString",
						Label:     "Input String",
						PartField: "inputString",
						Options:   sameOptions("1", "2", "3", "4", "5", "6"),
					},
					{
						ID:        "outputString",
						Label:     "Output String",
						PartField: "outputString",
						Options:   sameOptions("1", "2", "3", "4", "5", "6"),
					},
				},
			},
			{
				ID:    "voltage",
				Label: "VOLTAGE",
				Fields: []Field{
					{
						ID:        "voltage",
						Label:     "VOLTAGE",
						PartField: "technicalSpecs",
						SubField:  "voltage",
						Options:   sameOptions("600VDC", "1000VDC", "1500VDC"),
					},
				},
			},
		},
	}
}

func sameOptions(values ...string) []Option {
	options := make([]Option, len(values))
	for i, v := range values {
		options[i] = Option{Value: v, Label: v}
	}
	return options
}
