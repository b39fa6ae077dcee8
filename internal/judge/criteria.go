package judge

// DefaultCriteria returns the built-in rubric used when the config does not
// define its own. Selection and Clarity run on a 0-10 scale, the remaining
// criteria on 1-5; the mixed scales are intentional and handled by the
// normalized threshold.
func DefaultCriteria() []Criterion {
	return []Criterion{
		{
			Name: "Selection",
			Steps: []string{
				"Identify all feedback points from each grader in the original feedback",
				"Rank these points by potential impact on student learning",
				"Check which points were included in the synthesized feedback",
				"Assess whether highest-impact points were kept and lower-value dropped",
				"Check whether overlapping points from different graders were merged rather than repeated",
				"Check if selected points are grounded in specific evidence",
				"Score 0-10: 0-3=poor selection; 4-6=reasonable; 7-10=excellent prioritization",
			},
			Scale:     Scale{Min: 0, Max: 10},
			Threshold: 0.6,
		},
		{
			Name: "Clarity",
			Steps: []string{
				"Read each point from a student's perspective",
				"Check if each point is clear, concise, and easy to understand",
				"Check if feedback explains why something matters",
				"Check for redundancy between points",
				"Score 0-10: 0-3=confusing or redundant; 4-6=decent; 7-10=excellent",
			},
			Scale:     Scale{Min: 0, Max: 10},
			Threshold: 0.6,
		},
		{
			Name: "Coverage",
			Steps: []string{
				"Check whether major strengths from all graders are represented",
				"Check whether important improvement suggestions are included",
				"Check whether any significant points were lost in synthesis",
				"Score 1-5: 1=major points missing; 3=most points covered, some gaps; 5=comprehensive coverage of all key points",
			},
			Scale:     Scale{Min: 1, Max: 5},
			Threshold: 0.6,
		},
		{
			Name: "Deduplication",
			Steps: []string{
				"Check whether redundant points were consolidated",
				"Check whether the synthesis is concise without unnecessary repetition",
				"Check whether similar suggestions from different graders were combined",
				"Score 1-5: 1=significant redundancy remains; 3=some consolidation, minor repetition; 5=excellent deduplication, no redundancy",
			},
			Scale:     Scale{Min: 1, Max: 5},
			Threshold: 0.6,
		},
		{
			Name: "Evidence Preservation",
			Steps: []string{
				"Check whether direct quotes from the essay are retained where relevant",
				"Check whether specific examples are kept rather than genericized",
				"Check whether the synthesis is grounded in concrete evidence",
				"Score 1-5: 1=evidence largely lost, generic statements; 3=some evidence preserved; 5=strong evidence preservation throughout",
			},
			Scale:     Scale{Min: 1, Max: 5},
			Threshold: 0.6,
		},
		{
			Name: "Actionability",
			Steps: []string{
				"Check whether improvement suggestions are specific enough to act on",
				"Check whether suggestions include concrete steps or examples",
				"Check whether a student would know exactly what to do next",
				"Score 1-5: 1=vague, unhelpful suggestions; 3=moderately actionable; 5=highly specific and actionable guidance",
			},
			Scale:     Scale{Min: 1, Max: 5},
			Threshold: 0.6,
		},
	}
}
