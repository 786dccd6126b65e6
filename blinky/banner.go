package main

// banner is printed once before the first tick.
func banner(board string) string {
	return board + " started! Printf redirection working!\n"
}
