// Package summary answers questions about an author's week by letting a language model
// call the week and task group queries, then renders the model's markdown answer.
package summary
