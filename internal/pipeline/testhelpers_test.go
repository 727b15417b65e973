package pipeline

import "strconv"

// seoulFigures is a 2024-like snapshot: population, area (km²), bike lane (km).
var seoulFigures = []struct {
	district string
	pop      int64
	area     float64
	bike     float64
}{
	{"종로구", 139417, 23.91, 21.4},
	{"중구", 121312, 9.96, 13.0},
	{"용산구", 217194, 21.87, 33.7},
	{"성동구", 281289, 16.82, 42.1},
	{"광진구", 335554, 17.06, 30.3},
	{"동대문구", 342837, 14.22, 26.8},
	{"중랑구", 385349, 18.50, 49.4},
	{"성북구", 428546, 24.58, 28.9},
	{"강북구", 286708, 23.60, 18.6},
	{"도봉구", 303302, 20.65, 35.1},
	{"노원구", 496552, 35.44, 70.2},
	{"은평구", 463146, 29.71, 38.0},
	{"서대문구", 309361, 17.63, 25.2},
	{"마포구", 358101, 23.85, 56.3},
	{"양천구", 435932, 17.41, 52.9},
	{"강서구", 557820, 41.44, 92.4},
	{"구로구", 399546, 20.12, 43.6},
	{"금천구", 229546, 13.02, 24.7},
	{"영등포구", 376624, 24.55, 78.8},
	{"동작구", 373918, 16.35, 22.5},
	{"관악구", 485356, 29.57, 31.7},
	{"서초구", 404892, 46.98, 85.3},
	{"강남구", 556297, 39.50, 88.2},
	{"송파구", 654083, 33.87, 99.6},
	{"강동구", 462990, 24.59, 57.9},
}

func seoulSources() Sources {
	pop := popRecords()
	area := areaRecords()
	bike := bikeRecords()
	for _, f := range seoulFigures {
		pop = append(pop,
			[]string{f.district, TotalMarker, strconv.FormatInt(f.pop, 10)},
			[]string{f.district, "한국인", strconv.FormatInt(f.pop-1000, 10)},
		)
		area = append(area, []string{"서울시", f.district, strconv.FormatFloat(f.area, 'f', -1, 64)})
		bike = append(bike, []string{"합계", "자치구", f.district, strconv.FormatFloat(f.bike, 'f', -1, 64)})
	}
	return sources(pop, area, bike)
}
