// Package fetch ingests a patch library into a patch.Store.
//
// A library is a flat directory of XML patch files. Each file carries
// descriptive tags and the synthesizer parameter values:
//
//	<patch>
//	  <metadata name="Glass Bell" timbres="Bright, Resonant" types="Pluck"/>
//	  <parameter_data>
//	    <param id="FilterFrequency" value="0.4"/>
//	    <param id="Osc2Detune" value="0.1"/>
//	    ...
//	  </parameter_data>
//	  <macro_data>
//	    <macro amount="0.2"><target id="FilterEmphasis"/></macro>
//	  </macro_data>
//	</patch>
//
// Rules applied while reading:
//   - "timbres" names spectral categories, "types" temporal ones. A patch
//     lands in every category whose label occurs in the attribute text,
//     ignoring case and spacing. Other words are ignored.
//   - The oscillator channels are read from Osc2Detune and Osc3Detune, or
//     from the schema names OscModMix and OscDetune.
//   - Every macro adds its amount to each channel it targets, capped at 1.
//   - Temporal patches also carry EnvType. EnvType == 0 marks an envelope
//     without release, so FilterRelease and VcaRelease are zeroed in Pluck,
//     Swell and Short. LongRelease keeps its releases. EnvType itself is not
//     part of the stored vector.
//
// Loader works on any afero.Fs: afero.NewOsFs for real libraries and
// afero.NewMemMapFs in tests. Files are read in name order, so the store
// is the same on every run.
package fetch
