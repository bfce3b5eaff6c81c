// Basic usage:
//
//	pixfish.Init()
//	defer pixfish.Exit()
//
//	from, _ := pixfish.Format("R'G'B'A u8")
//	to, _ := pixfish.Format("RGBA float")
//	fish, _ := pixfish.GetFish(from, to)
//
//	src := []byte{127, 127, 127, 255}
//	dst := make([]byte, 4*8)
//	n, _ := pixfish.Process(fish, src, dst, 1)
package pixfish
