package studybot

// WorkType describes one kind of academic work the bot accepts, with the
// minimum price the administrator may raise per order.
type WorkType struct {
	Code      string
	Label     string
	BasePrice float64
}

var workTypes = []WorkType{
	{Code: "coursework", Label: "Курсовая", BasePrice: 1000},
	{Code: "essay", Label: "Реферат", BasePrice: 500},
	{Code: "control", Label: "Контрольная", BasePrice: 700},
	{Code: "translation", Label: "Перевод", BasePrice: 150},
	{Code: "presentation", Label: "Презентация", BasePrice: 300},
	{Code: "diploma", Label: "Диплом", BasePrice: 3000},
	{Code: "tasks", Label: "Задачи", BasePrice: 400},
}

func WorkTypes() []WorkType {
	return workTypes
}

func BasePrice(code string) float64 {
	for _, wt := range workTypes {
		if wt.Code == code {
			return wt.BasePrice
		}
	}
	return 0
}

func WorkTypeLabel(code string) string {
	for _, wt := range workTypes {
		if wt.Code == code {
			return wt.Label
		}
	}
	return code
}

func knownWorkType(code string) bool {
	for _, wt := range workTypes {
		if wt.Code == code {
			return true
		}
	}
	return false
}
