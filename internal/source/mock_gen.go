// internal/source/mock_gen.go
package source

//go:generate mockgen -typed -source=./loader.go -destination=../mocks/mock_loader.go -package=mocks Loader
