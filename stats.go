package rcpool

type Stats struct {
	Size      int
	Capacity  int
	Pages     int
	FreePages int
	Growths   int
	PageLen   int
	LoadRatio float32
}
