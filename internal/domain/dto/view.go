package dto

// StatCard is one labelled value box shown on the dashboard overview and on
// the detail page. Class carries the trend color class, if any.
type StatCard struct {
	Label string `json:"label" example:"Total Market Cap"`
	Value string `json:"value" example:"$2.41 T"`
	Class string `json:"class,omitempty" example:"text-success"`
}

// RangeOption is one button of the detail range selector.
type RangeOption struct {
	Days   int    `json:"days" example:"7"`
	Label  string `json:"label" example:"7D"`
	Active bool   `json:"active"`
	Href   string `json:"href" example:"/coins/bitcoin?days=7"`
}
