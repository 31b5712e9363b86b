package render

// extractScript walks every element in document order and returns the
// computed style subset the detectors need, alongside the rendered markup.
// The element order matches a document-order parse of the returned HTML,
// which is how styles are joined back to the tree.
const extractScript = `(() => {
	const els = document.querySelectorAll('*');
	const styles = [];
	for (const el of els) {
		const cs = window.getComputedStyle(el);
		styles.push({
			color: cs.color,
			background: cs.backgroundColor,
			fontSize: cs.fontSize,
			fontWeight: cs.fontWeight,
			position: cs.position,
			onclick: el.onclick !== null || el.hasAttribute('onclick'),
		});
	}
	return {
		html: document.documentElement.outerHTML,
		doctype: document.doctype !== null,
		styles: styles,
	};
})()`
