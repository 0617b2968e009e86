package questions

// Reconcile forces the question list to exactly count entries: extras are
// truncated and shortfalls padded with synthesized placeholders. Only
// generation requests are reconciled; modification requests keep whatever
// count the model returned.
func Reconcile(qs []Question, count int, difficulty, questionType string) []Question {
	if len(qs) == count {
		return qs
	}
	if len(qs) > count {
		return qs[:count]
	}
	out := qs
	for len(out) < count {
		out = append(out, Fallback(len(out), difficulty, questionType))
	}
	return out
}
