package isaac

// randinit mixes the seed held in e.results into e.mem, exactly following
// Jenkins's reference two-pass scramble. Call sites hold e.mu.
func (e *Engine) randinit(useSeed bool) {
	a, b, c, d, f, g, h := goldenRatio, goldenRatio, goldenRatio, goldenRatio, goldenRatio, goldenRatio, goldenRatio
	eVar := goldenRatio

	m := &e.mem
	r := &e.results

	for i := 0; i < 4; i++ {
		a, b, c, d, eVar, f, g, h = shuffle(a, b, c, d, eVar, f, g, h)
	}

	if useSeed {
		for i := 0; i < N; i += 8 {
			a += r[i]
			b += r[i+1]
			c += r[i+2]
			d += r[i+3]
			eVar += r[i+4]
			f += r[i+5]
			g += r[i+6]
			h += r[i+7]

			a, b, c, d, eVar, f, g, h = shuffle(a, b, c, d, eVar, f, g, h)

			m[i], m[i+1], m[i+2], m[i+3] = a, b, c, d
			m[i+4], m[i+5], m[i+6], m[i+7] = eVar, f, g, h
		}

		for i := 0; i < N; i += 8 {
			a += m[i]
			b += m[i+1]
			c += m[i+2]
			d += m[i+3]
			eVar += m[i+4]
			f += m[i+5]
			g += m[i+6]
			h += m[i+7]

			a, b, c, d, eVar, f, g, h = shuffle(a, b, c, d, eVar, f, g, h)

			m[i], m[i+1], m[i+2], m[i+3] = a, b, c, d
			m[i+4], m[i+5], m[i+6], m[i+7] = eVar, f, g, h
		}
	} else {
		for i := 0; i < N; i += 8 {
			a, b, c, d, eVar, f, g, h = shuffle(a, b, c, d, eVar, f, g, h)

			m[i], m[i+1], m[i+2], m[i+3] = a, b, c, d
			m[i+4], m[i+5], m[i+6], m[i+7] = eVar, f, g, h
		}
	}

	e.isaac() // fill in the first set of results
	e.count = N
}

// shuffle is the 32-bit ISAAC mixing round.
func shuffle(a, b, c, d, e, f, g, h uint32) (uint32, uint32, uint32, uint32, uint32, uint32, uint32, uint32) {
	a ^= b << 11
	d += a
	b += c
	b ^= c >> 2
	e += b
	c += d
	c ^= d << 8
	f += c
	d += e
	d ^= e >> 16
	g += d
	e += f
	e ^= f << 10
	h += e
	f += g
	f ^= g >> 4
	a += f
	g += h
	g ^= h << 8
	b += g
	h += a
	h ^= a >> 9
	c += h
	a += b
	return a, b, c, d, e, f, g, h
}

// ind is ISAAC's indirection into mem, byte-addressed so that the low
// ALPHA+2 bits of x select one of the N words.
func ind(mem *[N]uint32, x uint32) uint32 {
	return mem[(x>>2)&(N-1)]
}

// isaac refills e.results with N new pseudo-random words from e.mem, and
// advances e.a, e.b, e.c. Call sites hold e.mu.
func (e *Engine) isaac() {
	e.c++
	e.b += e.c

	var x, y uint32
	half := N / 2

	mIdx, m2Idx, rIdx := 0, half, 0
	for mIdx < half {
		mIdx, m2Idx, rIdx = e.isaacQuad(e.a<<13, mIdx, m2Idx, rIdx, &x, &y)
		mIdx, m2Idx, rIdx = e.isaacQuad(e.a>>6, mIdx, m2Idx, rIdx, &x, &y)
		mIdx, m2Idx, rIdx = e.isaacQuad(e.a<<2, mIdx, m2Idx, rIdx, &x, &y)
		mIdx, m2Idx, rIdx = e.isaacQuad(e.a>>16, mIdx, m2Idx, rIdx, &x, &y)
	}

	m2Idx = 0
	for m2Idx < half {
		mIdx, m2Idx, rIdx = e.isaacQuad(e.a<<13, mIdx, m2Idx, rIdx, &x, &y)
		mIdx, m2Idx, rIdx = e.isaacQuad(e.a>>6, mIdx, m2Idx, rIdx, &x, &y)
		mIdx, m2Idx, rIdx = e.isaacQuad(e.a<<2, mIdx, m2Idx, rIdx, &x, &y)
		mIdx, m2Idx, rIdx = e.isaacQuad(e.a>>16, mIdx, m2Idx, rIdx, &x, &y)
	}
}

// isaacQuad runs one rngstep, writing the produced output word into
// e.results[rIdx] and returning the advanced indices.
func (e *Engine) isaacQuad(mix uint32, mIdx, m2Idx, rIdx int, x, y *uint32) (int, int, int) {
	mem := &e.mem
	*x = mem[mIdx]
	e.a = (e.a ^ mix) + mem[m2Idx]
	mem[mIdx] = ind(mem, *x) + e.a + e.b
	*y = mem[mIdx]
	e.b = ind(mem, *y>>Alpha) + *x
	e.results[rIdx] = e.b
	return mIdx + 1, m2Idx + 1, rIdx + 1
}
