package entity

// Mask бинарная маска H×W, хранится построчно, значения 0 или 1.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask создаёт пустую маску заданного размера.
func NewMask(width, height int) Mask {
	return Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// Size возвращает размер маски.
func (m Mask) Size() Size {
	return Size{Width: m.Width, Height: m.Height}
}

// At сообщает, установлен ли пиксель (x, y). За пределами маски — false.
func (m Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x] != 0
}

// Set устанавливает или сбрасывает пиксель (x, y).
func (m Mask) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	if on {
		m.Pix[y*m.Width+x] = 1
	} else {
		m.Pix[y*m.Width+x] = 0
	}
}

// FillRect устанавливает все пиксели прямоугольника [x0,x1)×[y0,y1).
func (m Mask) FillRect(x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Set(x, y, true)
		}
	}
}

// Area число установленных пикселей.
func (m Mask) Area() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
