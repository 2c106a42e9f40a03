package glyph6x8

// glyphs is built from the patterns below: one string per row, '#' for a lit
// pixel, leftmost column first.
var glyphs = compile(map[rune][7]string{
	' ': {"......", "......", "......", "......", "......", "......", "......"},
	'?': {".###..", "#...#.", "....#.", "...#..", "..#...", "......", "..#..."},
	'0': {".###..", "#...#.", "#..##.", "#.#.#.", "##..#.", "#...#.", ".###.."},
	'1': {"..#...", ".##...", "..#...", "..#...", "..#...", "..#...", ".###.."},
	'2': {".###..", "#...#.", "....#.", "...#..", "..#...", ".#....", "#####."},
	'3': {"#####.", "...#..", "..#...", "...#..", "....#.", "#...#.", ".###.."},
	'4': {"...#..", "..##..", ".#.#..", "#..#..", "#####.", "...#..", "...#.."},
	'5': {"#####.", "#.....", "####..", "....#.", "....#.", "#...#.", ".###.."},
	'6': {"..##..", ".#....", "#.....", "####..", "#...#.", "#...#.", ".###.."},
	'7': {"#####.", "....#.", "...#..", "..#...", ".#....", ".#....", ".#...."},
	'8': {".###..", "#...#.", "#...#.", ".###..", "#...#.", "#...#.", ".###.."},
	'9': {".###..", "#...#.", "#...#.", ".####.", "....#.", "...#..", ".##..."},
	'.': {"......", "......", "......", "......", "......", ".##...", ".##..."},
	'+': {"......", "..#...", "..#...", "#####.", "..#...", "..#...", "......"},
	'-': {"......", "......", "......", "#####.", "......", "......", "......"},
	'*': {"......", "..#...", "#.#.#.", ".###..", "#.#.#.", "..#...", "......"},
	'/': {"......", "....#.", "...#..", "..#...", ".#....", "#.....", "......"},
	'=': {"......", "......", "#####.", "......", "#####.", "......", "......"},
	'(': {"...#..", "..#...", ".#....", ".#....", ".#....", "..#...", "...#.."},
	')': {".#....", "..#...", "...#..", "...#..", "...#..", "..#...", ".#...."},
	'×': {"......", "#...#.", ".#.#..", "..#...", ".#.#..", "#...#.", "......"},
	'÷': {"......", "..#...", "......", "#####.", "......", "..#...", "......"},
	'²': {".##...", "...#..", "..#...", ".###..", "......", "......", "......"},
	'√': {"...###", "...#..", "...#..", "#..#..", ".#.#..", "..##..", "...#.."},
	'C': {".###..", "#...#.", "#.....", "#.....", "#.....", "#...#.", ".###.."},
	'E': {"#####.", "#.....", "#.....", "####..", "#.....", "#.....", "#####."},
	'a': {"......", "......", ".###..", "....#.", ".####.", "#...#.", ".####."},
	'e': {"......", "......", ".###..", "#...#.", "#####.", "#.....", ".###.."},
	'f': {"..##..", ".#..#.", ".#....", "###...", ".#....", ".#....", ".#...."},
	'i': {"..#...", "......", ".##...", "..#...", "..#...", "..#...", ".###.."},
	'n': {"......", "......", "#.##..", "##..#.", "#...#.", "#...#.", "#...#."},
	'o': {"......", "......", ".###..", "#...#.", "#...#.", "#...#.", ".###.."},
	'r': {"......", "......", "#.##..", "##..#.", "#.....", "#.....", "#....."},
	'x': {"......", "......", "#...#.", ".#.#..", "..#...", ".#.#..", "#...#."},
})

func compile(src map[rune][7]string) map[rune][Height]byte {
	out := make(map[rune][Height]byte, len(src))
	for r, rows := range src {
		var b [Height]byte
		for i, row := range rows {
			for col := 0; col < Width && col < len(row); col++ {
				if row[col] == '#' {
					b[i] |= 0x20 >> col
				}
			}
		}
		out[r] = b
	}
	return out
}
