// Package facts carries the static eco-fact catalog shown to users.
package facts

// Fact is one educational blurb about avoided driving.
type Fact struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// All returns the fact catalog in display order.
func All() []Fact {
	return []Fact{
		{
			Title: "Carbon Footprint",
			Text:  "The average car emits about 404 grams of CO₂ per mile. By avoiding just 10 miles of driving per week, you prevent over 200 kg of CO₂ emissions annually.",
		},
		{
			Title: "Urban Space",
			Text:  "In downtown areas, up to 30% of land is dedicated to parking. Each parking space takes up about 180 square feet - that's a small room in your house!",
		},
		{
			Title: "Time Spent Parking",
			Text:  "Studies show drivers spend an average of 17 hours per year just looking for parking spots. That's more than two full work days!",
		},
		{
			Title: "Cost Savings",
			Text:  "The average cost of owning and operating a car is about $0.65 per mile. Every mile you avoid driving saves you money and the environment.",
		},
		{
			Title: "Public Health",
			Text:  "Cities with more walkable infrastructure and public transit have 50% lower rates of obesity and cardiovascular disease among residents.",
		},
		{
			Title: "Traffic Impact",
			Text:  "If just 10% of commuters switched to alternative transportation one day per week, traffic congestion would decrease by 40% during peak hours.",
		},
	}
}
