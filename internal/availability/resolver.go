package availability

import (
	"sort"
	"strings"
	"time"

	"github.com/heitorfr/barber-booking-service/internal/domain"
)

// ResolveDay нормализует недельное расписание в список рабочих интервалов
// на указанный день недели.
//
// Правила:
//   - ключи конфигурации матчатся через таблицу алиасов, неизвестные игнорируются;
//     несколько алиасов одного дня складываются
//   - все присутствующие пары диапазонов (утро, день, обе legacy-формы) складываются
//   - явный isWorking=false закрывает день, какие бы диапазоны ни были указаны
//   - isWorking=true без единого диапазона даёт fallback 09:00-18:00
//
// Функция чистая: одинаковый вход всегда даёт одинаковые интервалы
func (e *Engine) ResolveDay(cfg domain.WorkScheduleConfig, day time.Weekday) []domain.WorkingInterval {
	var (
		intervals        []domain.WorkingInterval
		markedWorking    bool
		explicitlyClosed bool
	)

	for key, dayCfg := range cfg {
		parsed, ok := ParseWeekday(key)
		if !ok || parsed != day {
			continue
		}

		if dayCfg.IsWorking != nil {
			if *dayCfg.IsWorking {
				markedWorking = true
			} else {
				explicitlyClosed = true
			}
		}

		intervals = append(intervals, e.extractRanges(key, dayCfg)...)
	}

	// Явное закрытие дня побеждает любые случайные поля с временем
	if explicitlyClosed {
		return nil
	}

	if len(intervals) == 0 {
		if markedWorking {
			return []domain.WorkingInterval{{
				StartMinute: domain.DefaultWorkdayStartMinute,
				EndMinute:   domain.DefaultWorkdayEndMinute,
			}}
		}
		return nil
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].StartMinute < intervals[j].StartMinute
	})

	return intervals
}

// extractRanges извлекает все присутствующие пары диапазонов из конфигурации дня
func (e *Engine) extractRanges(key string, cfg domain.DayConfig) []domain.WorkingInterval {
	pairs := [][2]*string{
		{cfg.MorningStart, cfg.MorningEnd},
		{cfg.AfternoonStart, cfg.AfternoonEnd},
		{cfg.StartTime, cfg.EndTime},
		{cfg.Start, cfg.End},
	}

	var ranges []domain.WorkingInterval
	for _, pair := range pairs {
		if pair[0] == nil || pair[1] == nil {
			continue
		}
		start := e.parseClock(key, *pair[0])
		end := e.parseClock(key, *pair[1])
		ranges = append(ranges, domain.WorkingInterval{StartMinute: start, EndMinute: end})
	}
	return ranges
}

// parseClock лениво парсит "HH:MM".
// Берётся числовой префикс до ":" для часов и после - для минут;
// нечисловой вход даёт 0. Это осознанная политика чтения legacy-данных:
// строгая валидация выполняется на записи расписания, здесь плохие данные
// только логируются
func (e *Engine) parseClock(key, s string) int {
	hoursPart, minutesPart, found := strings.Cut(s, ":")

	hours, okH := numericPrefix(hoursPart)
	minutes := 0
	okM := true
	if found {
		minutes, okM = numericPrefix(minutesPart)
	}

	if !okH || !okM || !found {
		e.logger.Warn("availability: lenient clock parse for day=%q value=%q -> %02d:%02d", key, s, hours, minutes)
	}

	total := hours*60 + minutes
	if total < 0 {
		return 0
	}
	if total > domain.MinutesPerDay {
		return domain.MinutesPerDay
	}
	return total
}

// numericPrefix извлекает ведущие цифры строки
// Возвращает ok=false, если строка не начинается с цифры
func numericPrefix(s string) (int, bool) {
	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	return n, digits > 0 && digits == len(s)
}
