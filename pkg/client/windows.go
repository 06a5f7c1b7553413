package client

// TimeWindow is a relative query window preset offered to view layers.
type TimeWindow struct {
	Value string
	Label string
}

// TimeWindows lists the supported relative windows; view layers render
// them as filter presets.
var TimeWindows = []TimeWindow{
	{Value: "1d", Label: "1 Day"},
	{Value: "2d", Label: "2 Days"},
	{Value: "3d", Label: "3 Days"},
	{Value: "4d", Label: "4 Days"},
	{Value: "5d", Label: "5 Days"},
	{Value: "6d", Label: "6 Days"},
	{Value: "7d", Label: "7 Days"},
	{Value: "8d", Label: "8 Days"},
	{Value: "9d", Label: "9 Days"},
	{Value: "10d", Label: "10 Days"},
	{Value: "11d", Label: "11 Days"},
	{Value: "12d", Label: "12 Days"},
	{Value: "13d", Label: "13 Days"},
	{Value: "14d", Label: "14 Days"},
	{Value: "15d", Label: "15 Days"},
}
