package photo

type Core interface {
	PhotoURL(fileID string) (string, error)
}
