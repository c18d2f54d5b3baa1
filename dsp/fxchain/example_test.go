package fxchain_test

import (
	"fmt"

	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/fxchain"
)

func ExampleProcessor() {
	p, err := fxchain.NewProcessor()
	if err != nil {
		panic(err)
	}

	if err := p.Prepare(48000, 256, 2); err != nil {
		panic(err)
	}

	v, _ := p.SetParameter(fxchain.KeyOverdriveSaturation, 250)
	fmt.Println("saturation:", v)

	order, _ := fxchain.ParseOrder("LadderFilter,Overdrive,Chorus,Phaser,GeneralFilter")
	if err := p.RequestReorder(order); err != nil {
		panic(err)
	}

	block := core.NewBlock(2, 256)
	p.Process(block)

	fmt.Println("order:", p.Order())

	// Output:
	// saturation: 100
	// order: LadderFilter,Overdrive,Chorus,Phaser,GeneralFilter
}
