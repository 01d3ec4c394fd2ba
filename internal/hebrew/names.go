package hebrew

// Religious month indices. Adar stands for Adar I in leap years.
const (
	MonthNisan = iota + 1
	MonthIyar
	MonthSivan
	MonthTamuz
	MonthAv
	MonthElul
	MonthTishri
	MonthCheshvan
	MonthKislev
	MonthTevet
	MonthShevat
	MonthAdar
	MonthAdarII
)

var monthNames = [...]string{
	MonthNisan:    "Nisan",
	MonthIyar:     "Iyar",
	MonthSivan:    "Sivan",
	MonthTamuz:    "Tamuz",
	MonthAv:       "Av",
	MonthElul:     "Elul",
	MonthTishri:   "Tishri",
	MonthCheshvan: "Cheshvan",
	MonthKislev:   "Kislev",
	MonthTevet:    "Tevet",
	MonthShevat:   "Shevat",
	MonthAdar:     "Adar",
	MonthAdarII:   "Adar II",
}

// MonthName resolves a religious month index to its English name. Month 12 is
// "Adar I" in leap years and "Adar" otherwise; month 13 exists only in leap
// years and resolves to "Adar II".
func MonthName(month int, leapYear bool) (string, error) {
	if month < MonthNisan || month > MonthAdarII {
		return "", ErrInvalidMonth
	}
	if month == MonthAdarII && !leapYear {
		return "", ErrInvalidMonth
	}
	if month == MonthAdar && leapYear {
		return "Adar I", nil
	}
	return monthNames[month], nil
}
