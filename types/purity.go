package types

// Purity is the karat grade of a gold item.
type Purity string

const (
	Purity24K Purity = "24K"
	Purity22K Purity = "22K"
	Purity18K Purity = "18K"
	Purity14K Purity = "14K"
)

// Valid reports whether p is a known purity grade.
func (p Purity) Valid() bool {
	switch p {
	case Purity24K, Purity22K, Purity18K, Purity14K:
		return true
	}
	return false
}
