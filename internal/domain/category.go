package domain

// Category is the BMI-derived bucket a member falls into. Staff are assigned
// categories and members are matched to staff through them.
type Category string

const (
	CategoryUnderweight Category = "Underweight"
	CategoryNormal      Category = "Normal"
	CategoryOverweight  Category = "Overweight"
	CategoryObese       Category = "Obese"
)

// Categories lists every valid category label.
var Categories = []Category{
	CategoryUnderweight,
	CategoryNormal,
	CategoryOverweight,
	CategoryObese,
}

// CalculateBMI computes body mass index from weight in kilograms and height
// in meters. Returns 0 when either input is non-positive.
func CalculateBMI(weightKg, heightM float64) float64 {
	if weightKg <= 0 || heightM <= 0 {
		return 0
	}
	return weightKg / (heightM * heightM)
}

// CategoryForBMI maps a BMI value to its category. The thresholds are
// inclusive-upper on the lower band: exactly 18.5 is Normal, exactly 25 is
// Overweight, exactly 30 is Obese.
func CategoryForBMI(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// ValidCategory reports whether the label is one of the four known buckets.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
