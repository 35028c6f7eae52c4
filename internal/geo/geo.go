// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package geo holds the reference data destinations are classified by:
// the Indonesian provinces and the destination categories.
package geo

import "github.com/samber/lo"

// Province is an Indonesian province with its approximate centroid.
type Province struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

var provinces = []Province{
	{Name: "Aceh", Lat: 4.695135, Long: 96.749397},
	{Name: "Sumatera Utara", Lat: 2.1153547, Long: 99.5450974},
	{Name: "Sumatera Barat", Lat: -0.7399397, Long: 100.8000051},
	{Name: "Riau", Lat: 0.2933466, Long: 101.7068294},
	{Name: "Jambi", Lat: -1.4851832, Long: 102.438058},
	{Name: "Sumatera Selatan", Lat: -3.3194374, Long: 104.9147137},
	{Name: "Bengkulu", Lat: -3.5778479, Long: 102.3463875},
	{Name: "Lampung", Lat: -4.5585849, Long: 105.4068079},
	{Name: "Kepulauan Bangka Belitung", Lat: -2.7410513, Long: 106.4405872},
	{Name: "Kepulauan Riau", Lat: 3.7855849, Long: 108.187775},
	{Name: "Jakarta", Lat: -6.2087634, Long: 106.845599},
	{Name: "Jawa Barat", Lat: -6.889167, Long: 107.64047},
	{Name: "Jawa Tengah", Lat: -7.150975, Long: 110.1402594},
	{Name: "Yogyakarta", Lat: -7.7955798, Long: 110.3694896},
	{Name: "Jawa Timur", Lat: -7.5360639, Long: 112.2384017},
	{Name: "Banten", Lat: -6.4058172, Long: 106.0640179},
	{Name: "Bali", Lat: -8.3405389, Long: 115.0919509},
	{Name: "Nusa Tenggara Barat", Lat: -8.652933, Long: 117.361649},
	{Name: "Nusa Tenggara Timur", Lat: -8.657382, Long: 121.079369},
	{Name: "Kalimantan Barat", Lat: -0.1322314, Long: 111.096318},
	{Name: "Kalimantan Tengah", Lat: -1.6814878, Long: 113.3823545},
	{Name: "Kalimantan Selatan", Lat: -3.0926415, Long: 115.2837585},
	{Name: "Kalimantan Timur", Lat: 0.5386592, Long: 116.419389},
	{Name: "Kalimantan Utara", Lat: 3.0730922, Long: 116.0413889},
	{Name: "Sulawesi Utara", Lat: 1.4300254, Long: 124.1435021},
	{Name: "Sulawesi Tengah", Lat: -1.4300254, Long: 121.4456179},
	{Name: "Sulawesi Selatan", Lat: -3.6687994, Long: 119.9740534},
	{Name: "Sulawesi Tenggara", Lat: -4.1148958, Long: 122.539603},
	{Name: "Gorontalo", Lat: 0.5435442, Long: 123.0567693},
	{Name: "Sulawesi Barat", Lat: -2.8441371, Long: 119.2320784},
	{Name: "Maluku", Lat: -3.2384616, Long: 130.1452734},
	{Name: "Maluku Utara", Lat: 0.570556, Long: 127.8087693},
	{Name: "Papua", Lat: -4.269928, Long: 138.080352},
	{Name: "Papua Barat", Lat: -1.3361154, Long: 133.1747162},
	{Name: "Papua Tengah", Lat: -3.976217, Long: 137.364055},
	{Name: "Papua Pegunungan", Lat: -3.83548, Long: 138.076844},
	{Name: "Papua Selatan", Lat: -7.639467, Long: 139.703418},
	{Name: "Papua Barat Daya", Lat: -0.765369, Long: 131.580059},
}

var categories = []string{
	"Bahari",
	"Budaya",
	"Cagar Alam",
	"Pusat Perbelanjaan",
	"Taman Hiburan",
	"Tempat Ibadah",
}

// Provinces returns the province reference list.
func Provinces() []Province {
	out := make([]Province, len(provinces))
	copy(out, provinces)

	return out
}

// Categories returns the destination category reference list.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)

	return out
}

// ValidProvince reports whether name is a known province.
func ValidProvince(
	name string,
) bool {
	return lo.ContainsBy(provinces, func(p Province) bool {
		return p.Name == name
	})
}

// ValidCategory reports whether name is a known destination category.
func ValidCategory(
	name string,
) bool {
	return lo.Contains(categories, name)
}
