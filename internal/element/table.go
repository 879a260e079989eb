package element

const (
	minute = 60.0
	hour   = 60 * minute
	day    = 24 * hour
	year   = 365.25 * day
)

var defaultTable = NewTable(
	Element{1, "H", "Hydrogen", "#FFFFFF", 1, 1, true, []Isotope{
		{Mass: 1.008},
		{Mass: 2.014},
		{Mass: 3.016, HalfLife: 12.32 * year, Mode: BetaMinus, Product: 2},
	}},
	Element{2, "He", "Helium", "#D9FFFF", 0, 2, false, []Isotope{
		{Mass: 4.003},
		{Mass: 3.016},
		{Mass: 6.019, HalfLife: 0.807, Mode: BetaMinus, Product: 3},
	}},
	Element{3, "Li", "Lithium", "#CC80FF", 1, 1, false, []Isotope{
		{Mass: 7.016},
		{Mass: 6.015},
		{Mass: 8.022, HalfLife: 0.839, Mode: BetaMinus, Product: 4},
	}},
	Element{4, "Be", "Beryllium", "#C2FF00", 2, 2, false, []Isotope{
		{Mass: 9.012},
		{Mass: 7.017, HalfLife: 53.22 * day, Mode: ElectronCapture, Product: 3},
		{Mass: 8.005, HalfLife: 8.19e-17, Mode: Alpha, Product: 2},
	}},
	Element{5, "B", "Boron", "#FFB5B5", 3, 3, true, []Isotope{
		{Mass: 11.009},
		{Mass: 10.013},
		{Mass: 12.014, HalfLife: 0.0202, Mode: BetaMinus, Product: 6},
	}},
	Element{6, "C", "Carbon", "#909090", 4, 4, true, []Isotope{
		{Mass: 12.000},
		{Mass: 13.003},
		{Mass: 14.003, HalfLife: 5730 * year, Mode: BetaMinus, Product: 7},
		{Mass: 11.011, HalfLife: 20.36 * minute, Mode: BetaPlus, Product: 5},
	}},
	Element{7, "N", "Nitrogen", "#3050F8", 3, 5, true, []Isotope{
		{Mass: 14.003},
		{Mass: 15.000},
		{Mass: 13.006, HalfLife: 9.965 * minute, Mode: BetaPlus, Product: 6},
		{Mass: 16.006, HalfLife: 7.13, Mode: BetaMinus, Product: 8},
	}},
	Element{8, "O", "Oxygen", "#FF0D0D", 2, 6, true, []Isotope{
		{Mass: 15.995},
		{Mass: 16.999},
		{Mass: 17.999},
		{Mass: 15.003, HalfLife: 122.24, Mode: BetaPlus, Product: 7},
		{Mass: 14.009, HalfLife: 70.6, Mode: BetaPlus, Product: 7},
	}},
	Element{9, "F", "Fluorine", "#90E050", 1, 7, true, []Isotope{
		{Mass: 18.998},
		{Mass: 18.001, HalfLife: 109.77 * minute, Mode: BetaPlus, Product: 8},
	}},
	Element{10, "Ne", "Neon", "#B3E3F5", 0, 8, false, []Isotope{
		{Mass: 19.992},
		{Mass: 21.991},
		{Mass: 19.002, HalfLife: 17.22, Mode: BetaPlus, Product: 9},
	}},
	Element{11, "Na", "Sodium", "#AB5CF2", 1, 1, false, []Isotope{
		{Mass: 22.990},
		{Mass: 21.994, HalfLife: 2.602 * year, Mode: BetaPlus, Product: 10},
		{Mass: 23.991, HalfLife: 14.96 * hour, Mode: BetaMinus, Product: 12},
	}},
	Element{12, "Mg", "Magnesium", "#8AFF00", 2, 2, false, []Isotope{
		{Mass: 23.985},
		{Mass: 26.984, HalfLife: 9.458 * minute, Mode: BetaMinus, Product: 13},
	}},
	Element{13, "Al", "Aluminium", "#BFA6A6", 3, 3, false, []Isotope{
		{Mass: 26.982},
		{Mass: 27.982, HalfLife: 2.245 * minute, Mode: BetaMinus, Product: 14},
	}},
	Element{14, "Si", "Silicon", "#F0C8A0", 4, 4, true, []Isotope{
		{Mass: 27.977},
		{Mass: 29.974},
		{Mass: 30.975, HalfLife: 157.3 * minute, Mode: BetaMinus, Product: 15},
	}},
	Element{15, "P", "Phosphorus", "#FF8000", 5, 5, true, []Isotope{
		{Mass: 30.974},
		{Mass: 31.974, HalfLife: 14.268 * day, Mode: BetaMinus, Product: 16},
		{Mass: 29.978, HalfLife: 2.498 * minute, Mode: BetaPlus, Product: 14},
	}},
	Element{16, "S", "Sulfur", "#FFFF30", 6, 6, true, []Isotope{
		{Mass: 31.972},
		{Mass: 34.969, HalfLife: 87.37 * day, Mode: BetaMinus, Product: 17},
	}},
	Element{17, "Cl", "Chlorine", "#1FF01F", 1, 7, true, []Isotope{
		{Mass: 34.969},
		{Mass: 36.966},
		{Mass: 35.968, HalfLife: 3.01e5 * year, Mode: BetaMinus, Product: 18},
	}},
	Element{18, "Ar", "Argon", "#80D1E3", 0, 8, false, []Isotope{
		{Mass: 39.962},
		{Mass: 35.968},
	}},
	Element{19, "K", "Potassium", "#8F40D4", 1, 1, false, []Isotope{
		{Mass: 38.964},
		{Mass: 39.964, HalfLife: 1.248e9 * year, Mode: BetaMinus, Product: 20},
	}},
	Element{20, "Ca", "Calcium", "#3DFF00", 2, 2, false, []Isotope{
		{Mass: 39.963},
	}},
)

// Default returns the built-in table covering hydrogen through calcium.
func Default() *Table { return defaultTable }

const (
	Hydrogen   = 1
	Helium     = 2
	Boron      = 5
	Carbon     = 6
	Nitrogen   = 7
	Oxygen     = 8
	Fluorine   = 9
	Neon       = 10
	Sodium     = 11
	Silicon    = 14
	Phosphorus = 15
	Sulfur     = 16
	Chlorine   = 17
)
