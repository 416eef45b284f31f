// Package recommend selects recipes for a user from a candidate pool.
//
// The engine is content based: a recipe is admissible when its diet tags are
// compatible with the user's dietary preferences and it carries none of the
// user's allergens. Among admissible recipes, those whose categories or
// cuisine types match the user's stated preferences, or the preferences
// inferred from positively rated recipes in the pool, are preferred. The
// result is a uniform random sample so repeated requests rotate through the
// matches instead of always returning the same page.
//
// The package performs no I/O. Callers load the pool, the profile and the
// ratings and pass them in.
package recommend
