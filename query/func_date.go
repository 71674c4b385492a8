package query

import (
	"fmt"
	"time"
)

var dateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDateTime(str string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a valid date time", ErrLiteral, str)
}

func formatDateTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

// applyToDates resolves the optional leading path then maps do over
// every textual date of the context. Non textual elements give null,
// malformed dates are fatal.
func applyToDates(doc any, path string, do func(time.Time) any) (any, error) {
	if path != "" {
		v, err := evalPath(doc, -1, path)
		if err != nil {
			return nil, err
		}
		doc = v
	}
	if arr, ok := doc.([]any); ok {
		out := make([]any, len(arr))
		for i := range arr {
			str, ok := arr[i].(string)
			if !ok {
				continue
			}
			t, err := parseDateTime(str)
			if err != nil {
				return nil, err
			}
			out[i] = do(t)
		}
		return out, nil
	}
	str, ok := doc.(string)
	if !ok {
		return nil, nil
	}
	t, err := parseDateTime(str)
	if err != nil {
		return nil, err
	}
	return do(t), nil
}

func chronoFunc(get func(time.Time) any) FuncImpl {
	return func(doc any, args string) (any, error) {
		path, err := getParamPath(args)
		if err != nil {
			return nil, err
		}
		return applyToDates(doc, path, get)
	}
}

// shiftFunc builds the plus and minus family: a required amount with
// an optional leading path.
func shiftFunc(dir int, add func(time.Time, int) time.Time) FuncImpl {
	return func(doc any, args string) (any, error) {
		toks, err := decomposeArgs(args, 1, 2)
		if err != nil {
			return nil, err
		}
		var path, amount string
		if len(toks) == 2 {
			path, amount = toks[0], toks[1]
		} else {
			amount = toks[0]
		}
		if path != "" {
			doc, err = evalPath(doc, -1, path)
			if err != nil {
				return nil, err
			}
		}
		n, err := argInt(doc, amount)
		if err != nil {
			return nil, err
		}
		return applyToDates(doc, "", func(t time.Time) any {
			return formatDateTime(add(t, n*dir))
		})
	}
}

func truncateFunc(trunc func(time.Time) time.Time) FuncImpl {
	return func(doc any, args string) (any, error) {
		path, err := getParamPath(args)
		if err != nil {
			return nil, err
		}
		return applyToDates(doc, path, func(t time.Time) any {
			return formatDateTime(trunc(t))
		})
	}
}

func dateBuiltins() []Func {
	chronos := []struct {
		name string
		get  func(time.Time) any
	}{
		{"year", func(t time.Time) any { return float64(t.Year()) }},
		{"month", func(t time.Time) any { return float64(t.Month()) }},
		{"day", func(t time.Time) any { return float64(t.Day()) }},
		{"hour", func(t time.Time) any { return float64(t.Hour()) }},
		{"minute", func(t time.Time) any { return float64(t.Minute()) }},
		{"second", func(t time.Time) any { return float64(t.Second()) }},
		{"dayOfWeek", func(t time.Time) any { return float64((int(t.Weekday())+6)%7 + 1) }},
		{"amPmOfDay", func(t time.Time) any {
			if t.Hour() < 12 {
				return "AM"
			}
			return "PM"
		}},
	}
	shifts := []struct {
		name string
		add  func(time.Time, int) time.Time
	}{
		{"Seconds", func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Second) }},
		{"Minutes", func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Minute) }},
		{"Hours", func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Hour) }},
		{"Days", func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }},
		{"Months", func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) }},
		{"Years", func(t time.Time, n int) time.Time { return t.AddDate(n, 0, 0) }},
	}
	truncs := []struct {
		name  string
		trunc func(time.Time) time.Time
	}{
		{"truncateToMinute", func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
		}},
		{"truncateToHour", func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
		}},
		{"truncateToDay", func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		}},
		{"truncateToMonth", func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		}},
		{"truncateToYear", func(t time.Time) time.Time {
			return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
		}},
	}

	var all []Func
	for _, c := range chronos {
		all = append(all, Func{Name: c.name, ArrayAware: true, Do: chronoFunc(c.get)})
	}
	for _, s := range shifts {
		all = append(all, Func{Name: "plus" + s.name, ArrayAware: true, Do: shiftFunc(1, s.add)})
		all = append(all, Func{Name: "minus" + s.name, ArrayAware: true, Do: shiftFunc(-1, s.add)})
	}
	for _, tr := range truncs {
		all = append(all, Func{Name: tr.name, ArrayAware: true, Do: truncateFunc(tr.trunc)})
	}
	return all
}
