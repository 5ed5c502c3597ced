// Command factorsim estimates how many quantum samples Shor's
// algorithm would need to factor numbers of a given bit size, without
// simulating any amplitudes: period-finding is replaced by a classical
// sampler that draws Shor measurement outcomes from a period multiple
// known through a side channel, since amplitude simulation of that step
// is explicit Sim non-goal territory.
//
// Usage:
//
//	factorsim [--min=N] [--max=N] [--rep=N]        > data.csv
//	factorsim --plot [--out=path.png]              < data.csv
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/big"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const csvHeader = "problem size (bits),repetitions,record,factor1,factor2"

func main() {
	plot := flag.Bool("plot", false, "read csv data from stdin and render a scatter plot instead of simulating")
	out := flag.String("out", "factor-reps.png", "output path for --plot")
	minBits := flag.Int("min", 1, "minimum problem bit size")
	maxBits := flag.Int("max", 80, "maximum problem bit size")
	rep := flag.Int("rep", 1000, "samples per bit size")
	flag.Parse()

	if *plot {
		results, err := readCSV(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, "factorsim:", err)
			os.Exit(1)
		}
		if err := plotResults(results, *out); err != nil {
			fmt.Fprintln(os.Stderr, "factorsim:", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(csvHeader)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for bits := *minBits; bits <= *maxBits; bits++ {
		for k := 0; k < *rep; k++ {
			problem := randomProblem(bits)
			run := simulateFactoring(problem)
			fmt.Fprintf(w, "%d,%d,%q,%s,%s\n",
				problem.Modulus.BitLen(), run.Samples, run.Record, run.FactorA, run.FactorB)
		}
	}
}

// run is the outcome of simulating one factoring attempt.
type run struct {
	Samples          int
	Record           string
	FactorA, FactorB *big.Int
}

// problem is a number to factor plus the side-channel period multiple
// an ideal quantum computer would have revealed, used to emulate the
// sampling step without simulating amplitudes.
type problem struct {
	Modulus       *big.Int
	periodMultiple *big.Int
}

func randomProblem(bits int) *problem {
	switch {
	case bits <= 1:
		return newProblem(big.NewInt(1), big.NewInt(1))
	case bits <= 2:
		return newProblem(big.NewInt(2), big.NewInt(1))
	case bits <= 3:
		return newProblem(big.NewInt(2), big.NewInt(3))
	}

	h1 := bits / 2
	h2 := bits - h1
	for {
		p1 := randPrime(h1)
		p2 := randPrime(h2)
		if p1.Cmp(p2) == 0 {
			continue
		}
		modulus := new(big.Int).Mul(p1, p2)
		if modulus.BitLen() != bits {
			continue
		}
		return newProblem(p1, p2)
	}
}

func newProblem(a, b *big.Int) *problem {
	modulus := new(big.Int).Mul(a, b)
	totientA := new(big.Int).Sub(a, big.NewInt(1))
	totientB := new(big.Int).Sub(b, big.NewInt(1))
	if a.Cmp(big.NewInt(1)) == 0 {
		totientA = big.NewInt(1)
	}
	if b.Cmp(big.NewInt(1)) == 0 {
		totientB = big.NewInt(1)
	}
	periodMultiple := new(big.Int).Mul(totientA, totientB)
	return &problem{Modulus: modulus, periodMultiple: periodMultiple}
}

func randPrime(bits int) *big.Int {
	if bits < 2 {
		bits = 2
	}
	for {
		candidate, err := cryptoRandPrime(bits)
		if err == nil {
			return candidate
		}
	}
}

// cryptoRandPrime mirrors the original simulator's randprime(): a
// uniformly random odd candidate of the requested bit width, accepted
// once it passes a Miller-Rabin primality check.
func cryptoRandPrime(bits int) (*big.Int, error) {
	lo := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	span := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	span.Sub(span, lo)
	for i := 0; i < 10000; i++ {
		offset := new(big.Int).Rand(rng, span)
		candidate := new(big.Int).Add(lo, offset)
		candidate.SetBit(candidate, 0, 1)
		if candidate.ProbablyPrime(20) {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("no prime found in %d bits after 10000 attempts", bits)
}

var rng = rand.New(rand.NewSource(1))

// shorSampler emulates the quantum part of Shor's algorithm: it knows
// the true period multiple via a side channel and draws samples whose
// distribution matches what the quantum phase-estimation step would
// actually produce, without simulating any amplitudes.
type shorSampler struct {
	period      *big.Int
	sampleCount int
}

func newShorSampler(base *big.Int, p *problem) *shorSampler {
	period := new(big.Int).Set(p.periodMultiple)
	for _, f := range smallFactors(period) {
		reduced := new(big.Int).Div(period, f)
		if new(big.Int).Exp(base, reduced, p.Modulus).Cmp(big.NewInt(1)) == 0 {
			period = reduced
		}
	}
	return &shorSampler{period: period}
}

// smallFactors returns the distinct prime factors of n below 1<<20,
// sufficient to strip the excess the totient-based period multiple
// carries over the true period for the moduli this CLI exercises.
func smallFactors(n *big.Int) []*big.Int {
	var factors []*big.Int
	m := new(big.Int).Set(n)
	for d := int64(2); d < 1<<20; d++ {
		divisor := big.NewInt(d)
		if divisor.Cmp(m) > 0 {
			break
		}
		if new(big.Int).Mod(m, divisor).Sign() == 0 {
			factors = append(factors, divisor)
			for new(big.Int).Mod(m, divisor).Sign() == 0 {
				m.Div(m, divisor)
			}
		}
	}
	return factors
}

func (s *shorSampler) sample() *big.Int {
	s.sampleCount++
	if s.period.Cmp(big.NewInt(1)) <= 0 {
		return big.NewInt(1)
	}
	k := new(big.Int).Rand(rng, s.period)
	return reducedDenominator(k, s.period)
}

// reducedDenominator returns the denominator of k/p in lowest terms.
func reducedDenominator(k, p *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(k), p)
	if g.Sign() == 0 {
		return new(big.Int).Set(p)
	}
	return new(big.Int).Div(p, g)
}

func simulateFactoring(p *problem) run {
	one := big.NewInt(1)
	two := big.NewInt(2)

	if p.Modulus.Cmp(one) == 0 {
		return run{Record: "(trivial)", FactorA: one, FactorB: one}
	}
	if new(big.Int).Mod(p.Modulus, two).Sign() == 0 {
		half := new(big.Int).Div(p.Modulus, two)
		return run{Record: "(even)", FactorA: half, FactorB: two}
	}

	samples := 0
	var record strings.Builder
	for attempt := 0; attempt < 1000; attempt++ {
		base := randRange(two, new(big.Int).Sub(p.Modulus, one))
		if g := new(big.Int).GCD(nil, nil, base, p.Modulus); g.Cmp(one) != 0 {
			other := new(big.Int).Div(p.Modulus, g)
			record.WriteString("(gcd)")
			return run{Samples: samples, Record: record.String(), FactorA: g, FactorB: other}
		}

		sampler := newShorSampler(base, p)
		factors, rec := attemptFactorViaTwoSamples(base, p.Modulus, sampler)
		record.WriteString(rec)
		samples += sampler.sampleCount
		if factors != nil {
			return run{Samples: samples, Record: record.String(), FactorA: factors[0], FactorB: factors[1]}
		}
	}
	return run{Samples: samples, Record: record.String() + "(gave up)", FactorA: one, FactorB: p.Modulus}
}

func attemptFactorViaTwoSamples(base, modulus *big.Int, sampler *shorSampler) ([]*big.Int, string) {
	s1 := sampler.sample()
	if f := attemptFactorFromSample(base, s1, modulus); f != nil {
		return f, "i"
	}
	s2 := sampler.sample()
	if f := attemptFactorFromSample(base, s2, modulus); f != nil {
		return f, "_i"
	}
	s3 := lcm(s1, s2)
	if f := attemptFactorFromSample(base, s3, modulus); f != nil {
		return f, "_C"
	}
	return nil, "_!"
}

func attemptFactorFromSample(base, sample, modulus *big.Int) []*big.Int {
	for missing := int64(1); missing < 100; missing++ {
		period := new(big.Int).Mul(sample, big.NewInt(missing))
		if new(big.Int).Exp(base, period, modulus).Cmp(big.NewInt(1)) == 0 {
			return attemptFactorFromPeriod(base, period, modulus)
		}
	}
	return nil
}

func attemptFactorFromPeriod(base, period, modulus *big.Int) []*big.Int {
	two := big.NewInt(2)
	if new(big.Int).Mod(period, two).Cmp(big.NewInt(1)) == 0 {
		return nil
	}
	half := new(big.Int).Div(period, two)
	s := new(big.Int).Exp(base, half, modulus)
	if s.Cmp(new(big.Int).Sub(modulus, big.NewInt(1))) == 0 {
		return nil
	}
	factor := new(big.Int).GCD(nil, nil, new(big.Int).Sub(s, big.NewInt(1)), modulus)
	if factor.Cmp(big.NewInt(1)) == 0 || factor.Cmp(modulus) == 0 {
		return nil
	}
	other := new(big.Int).Div(modulus, factor)
	return []*big.Int{factor, other}
}

func randRange(lo, hi *big.Int) *big.Int {
	span := new(big.Int).Sub(hi, lo)
	if span.Sign() <= 0 {
		return new(big.Int).Set(lo)
	}
	return new(big.Int).Add(lo, new(big.Int).Rand(rng, span))
}

func lcm(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, a, b)
	if g.Sign() == 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Div(new(big.Int).Mul(a, b), g)
}

// readCSV loads the "bits -> repetitions" samples written in non-plot
// mode, for rendering in plot mode.
func readCSV(r *os.File) (map[int][]int, error) {
	results := make(map[int][]int)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == csvHeader {
			continue
		}
		parts := strings.SplitN(line, ",", 3)
		if len(parts) < 2 {
			continue
		}
		bits, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("factorsim: bad bits column %q: %w", parts[0], err)
		}
		reps, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("factorsim: bad repetitions column %q: %w", parts[1], err)
		}
		results[bits] = append(results[bits], reps)
	}
	return results, sc.Err()
}

// plotResults rasterizes a sample-mean curve with a scatter overlay of
// the individual repetition counts, in the teacher's raster-drawing
// idiom (golang.org/x/image).
func plotResults(results map[int][]int, path string) error {
	bitSizes := make([]int, 0, len(results))
	maxReps := 0
	for bits, reps := range results {
		bitSizes = append(bitSizes, bits)
		for _, r := range reps {
			if r > maxReps {
				maxReps = r
			}
		}
	}
	sort.Ints(bitSizes)
	if len(bitSizes) == 0 {
		return fmt.Errorf("no data to plot")
	}

	const marginX, marginY = 50, 30
	plotW, plotH := 760, 420
	width, height := plotW+2*marginX, plotH+2*marginY

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	axis := color.Black
	drawLine(img, image.Pt(marginX, marginY), image.Pt(marginX, marginY+plotH), axis)
	drawLine(img, image.Pt(marginX, marginY+plotH), image.Pt(marginX+plotW, marginY+plotH), axis)
	drawText(img, image.Pt(marginX, marginY-10), axis, "repetitions of Shor's algorithm quantum part")

	minBits, maxBits := bitSizes[0], bitSizes[len(bitSizes)-1]
	xAt := func(bits int) int {
		if maxBits == minBits {
			return marginX + plotW/2
		}
		return marginX + (bits-minBits)*plotW/(maxBits-minBits)
	}
	yAt := func(reps int) int {
		if maxReps == 0 {
			return marginY + plotH
		}
		return marginY + plotH - reps*plotH/maxReps
	}

	scatter := color.RGBA{100, 100, 220, 160}
	for _, bits := range bitSizes {
		for _, reps := range results[bits] {
			px, py := xAt(bits), yAt(reps)
			img.Set(px, py, scatter)
		}
	}

	mean := color.RGBA{0, 0, 0, 255}
	prevX, prevY := 0, 0
	for i, bits := range bitSizes {
		reps := results[bits]
		sum := 0
		for _, r := range reps {
			sum += r
		}
		avg := 0
		if len(reps) > 0 {
			avg = sum / len(reps)
		}
		x, y := xAt(bits), yAt(avg)
		if i > 0 {
			drawLine(img, image.Pt(prevX, prevY), image.Pt(x, y), mean)
		}
		prevX, prevY = x, y
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func drawLine(img *image.RGBA, start, end image.Point, col color.Color) {
	dx, dy := absInt(end.X-start.X), absInt(end.Y-start.Y)
	sx, sy := signInt(end.X-start.X), signInt(end.Y-start.Y)
	x, y := start.X, start.Y
	err := dx - dy
	for {
		img.Set(x, y, col)
		if x == end.X && y == end.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func drawText(img *image.RGBA, p image.Point, col color.Color, txt string) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(p.X, p.Y)}
	d.DrawString(txt)
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func signInt(a int) int {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	default:
		return 0
	}
}
