package availability

import (
	"strings"
	"time"
)

// weekdayAliases канонизация названий дней недели.
// Расписания приходят из нескольких поколений админки: английские полные
// имена, трёхбуквенные сокращения и португальские варианты (с диакритикой
// и без). Всё сводится к time.Weekday ровно в одном месте - здесь
var weekdayAliases = map[string]time.Weekday{
	// English
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,

	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,

	// Português
	"domingo":       time.Sunday,
	"segunda":       time.Monday,
	"segunda-feira": time.Monday,
	"terca":         time.Tuesday,
	"terça":         time.Tuesday,
	"terca-feira":   time.Tuesday,
	"terça-feira":   time.Tuesday,
	"quarta":        time.Wednesday,
	"quarta-feira":  time.Wednesday,
	"quinta":        time.Thursday,
	"quinta-feira":  time.Thursday,
	"sexta":         time.Friday,
	"sexta-feira":   time.Friday,
	"sabado":        time.Saturday,
	"sábado":        time.Saturday,

	"dom": time.Sunday,
	"seg": time.Monday,
	"ter": time.Tuesday,
	"qua": time.Wednesday,
	"qui": time.Thursday,
	"sex": time.Friday,
	"sab": time.Saturday,
	"sáb": time.Saturday,
}

// ParseWeekday возвращает канонический день недели для произвольного алиаса.
// Регистр и пробелы по краям не учитываются; неизвестные ключи дают ok=false
func ParseWeekday(name string) (time.Weekday, bool) {
	day, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(name))]
	return day, ok
}
