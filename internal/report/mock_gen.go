// internal/report/mock_gen.go
package report

//go:generate mockgen -typed -source=./reporter.go -destination=../mocks/mock_reporter.go -package=mocks Reporter
