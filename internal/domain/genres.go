package domain

// genreNames is the fixed genre table of the metadata API (ko-KR names)
var genreNames = map[int]string{
	28:    "액션",
	12:    "모험",
	16:    "애니메이션",
	35:    "코미디",
	80:    "범죄",
	99:    "다큐멘터리",
	18:    "드라마",
	10751: "가족",
	14:    "판타지",
	36:    "역사",
	27:    "공포",
	10402: "음악",
	9648:  "미스터리",
	10749: "로맨스",
	878:   "SF",
	10770: "TV영화",
	53:    "스릴러",
	10752: "전쟁",
	37:    "서부",
}

var genreIDs = func() map[string]int {
	m := make(map[string]int, len(genreNames))
	for id, name := range genreNames {
		m[name] = id
	}
	return m
}()

// GenreName resolves a genre id to its display name
func GenreName(id int) (string, bool) {
	name, ok := genreNames[id]
	return name, ok
}

// GenreID resolves a genre display name to its id
func GenreID(name string) (int, bool) {
	id, ok := genreIDs[name]
	return id, ok
}
