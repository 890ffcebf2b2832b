package geomodel

type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

var DefaultCities = []City{
	{Name: "New York", Lat: 40.7128, Lon: -74.0060},
	{Name: "San Francisco", Lat: 37.7749, Lon: -122.4194},
	{Name: "Toronto", Lat: 43.6532, Lon: -79.3832},
	{Name: "Mexico City", Lat: 19.4326, Lon: -99.1332},
	{Name: "São Paulo", Lat: -23.5505, Lon: -46.6333},
	{Name: "London", Lat: 51.5074, Lon: -0.1278},
	{Name: "Paris", Lat: 48.8566, Lon: 2.3522},
	{Name: "Berlin", Lat: 52.5200, Lon: 13.4050},
	{Name: "Cairo", Lat: 30.0444, Lon: 31.2357},
	{Name: "Lagos", Lat: 6.5244, Lon: 3.3792},
	{Name: "Dubai", Lat: 25.2048, Lon: 55.2708},
	{Name: "Mumbai", Lat: 19.0760, Lon: 72.8777},
	{Name: "Singapore", Lat: 1.3521, Lon: 103.8198},
	{Name: "Tokyo", Lat: 35.6762, Lon: 139.6503},
	{Name: "Sydney", Lat: -33.8688, Lon: 151.2093},
}
